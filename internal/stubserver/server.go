package stubserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/namnm309/finmate-go/internal/core/domain"
	"github.com/namnm309/finmate-go/internal/dto"
	"github.com/namnm309/finmate-go/internal/middleware"
	"github.com/namnm309/finmate-go/internal/utils"
)

// Config carries the minting parameters for stub session tokens.
type Config struct {
	JWTSecret string
	JWTExpiry time.Duration
	Issuer    string
}

// Server implements the external contracts the SDK consumes (the REST list
// endpoint, a sign-in endpoint playing the identity provider and the per-user
// realtime channel) over in-memory fixtures. Development use only.
type Server struct {
	cfg      Config
	store    *Store
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewServer(cfg Config, store *Store, hub *Hub, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		store:  store,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Router assembles the gin engine with logging, CORS and rate limiting.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.StructuredLoggingMiddleware(s.logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
	}))

	rate := limiter.Rate{Period: time.Minute, Limit: 300}
	router.Use(middleware.RateLimit(limiter.New(memorystore.NewStore(), rate)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/auth/signin", s.signIn)

	authorized := router.Group("/", middleware.AuthMiddleware(s.cfg.JWTSecret))
	authorized.GET("/transactions", s.listTransactions)
	authorized.POST("/transactions", s.createTransaction)
	authorized.GET("/ws", s.serveWS)

	return router
}

func (s *Server) signIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := s.store.Authenticate(req.Email, req.Password)
	if !ok {
		logger.Warn("Sign in rejected", slog.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.Issuer)
	if err != nil {
		logger.Error("Failed to mint token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mint token"})
		return
	}

	c.JSON(http.StatusOK, dto.SignInResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.cfg.JWTExpiry.Seconds()),
	})
}

func (s *Server) listTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	params := dto.ListTransactionsParams{
		TransactionTypeID: c.Query("transactionTypeId"),
		CategoryID:        c.Query("categoryId"),
		MoneySourceID:     c.Query("moneySourceId"),
	}
	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
			return
		}
		params.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
			return
		}
		params.EndDate = &t
	}
	params.Page = queryInt(c, "page")
	params.PageSize = queryInt(c, "pageSize")

	c.JSON(http.StatusOK, s.store.List(userID, params))
}

func (s *Server) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a non-negative decimal"})
		return
	}

	tt, ms, cat, err := s.store.LookupRefs(req.TransactionTypeID, req.MoneySourceID, req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		TransactionType:    tt,
		MoneySource:        ms,
		Category:           cat,
		Amount:             amount,
		TransactionDate:    req.TransactionDate,
		Description:        req.Description,
		IsBorrowing:        req.IsBorrowing,
		IsFee:              req.IsFee,
		ExcludeFromReports: req.ExcludeFromReports,
		AuditFields:        domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if req.ContactID != "" {
		txn.Contact = &domain.ContactRef{ContactID: req.ContactID}
	}
	s.store.Add(userID, txn)

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	s.hub.Broadcast(userID, dto.TransactionEvent{
		TransactionID: txn.TransactionID,
		Action:        dto.ActionCreated,
	})
	c.JSON(http.StatusCreated, txn)
}

func (s *Server) serveWS(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	s.hub.Register(userID, conn)
	defer func() {
		s.hub.Unregister(userID, conn)
		conn.Close()
	}()

	// The channel is server-push only; drain client frames until close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
