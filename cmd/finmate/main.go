package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"

	"github.com/namnm309/finmate-go/internal/adapters/api"
	"github.com/namnm309/finmate-go/internal/adapters/identity"
	"github.com/namnm309/finmate-go/internal/adapters/realtime"
	"github.com/namnm309/finmate-go/internal/core/services"
	"github.com/namnm309/finmate-go/internal/dto"
	"github.com/namnm309/finmate-go/internal/platform/config"
	"github.com/namnm309/finmate-go/internal/utils"
)

func main() {
	search := flag.String("search", "", "local free-text filter over the fetched feed")
	all := flag.Bool("all", false, "keep loading pages until the feed is exhausted")
	follow := flag.Bool("follow", false, "stay connected and print realtime transaction events")
	create := flag.String("create", "", "create a demo expense with the given description, then exit")
	flag.Parse()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	tokens, err := buildTokenSource(ctx, cfg)
	if err != nil {
		logger.Error("Failed to build token source", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if tok, err := tokens.Token(); err == nil {
		if subject, err := identity.SubjectFromToken(tok.AccessToken); err == nil {
			logger = logger.With(slog.String("user_id", subject))
		}
	}

	client := api.NewClient(cfg.APIBaseURL, tokens, logger, api.WithTimeout(cfg.HTTPTimeout))

	if *create != "" {
		if err := createDemoTransaction(ctx, client, *create); err != nil {
			logger.Error("Failed to create transaction", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	txnSvc := services.NewTransactionService(client)
	feed := services.NewFeedService(txnSvc, logger, services.WithPageSize(cfg.PageSize))

	feed.HandleFocus(ctx)
	if err := feed.Err(); err != nil {
		logger.Error("Initial feed load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *all {
		for feed.HasMore() {
			before := len(feed.Transactions())
			feed.LoadMore(ctx)
			if len(feed.Transactions()) == before {
				// A silently-degraded pagination failure would loop forever.
				logger.Warn("Feed stopped advancing, rendering what was fetched")
				break
			}
		}
	}

	feed.SetSearchQuery(*search)
	printFeed(feed)

	if *follow {
		sub := realtime.NewSubscriber(cfg.WSURL, tokens, func(event dto.TransactionEvent) {
			fmt.Printf("event: %s %s\n", event.Action, event.TransactionID)
		}, logger)
		if err := sub.Start(ctx); err != nil {
			logger.Error("Failed to start realtime subscriber", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer sub.Close()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
	}
}

func buildTokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	if cfg.StaticToken != "" {
		return identity.StaticTokenSource(cfg.StaticToken), nil
	}
	return identity.NewPasswordTokenSource(ctx, identity.Config{
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Username:     cfg.Username,
		Password:     cfg.Password,
	})
}

func createDemoTransaction(ctx context.Context, client *api.Client, description string) error {
	req := dto.CreateTransactionRequest{
		TransactionTypeID: "tt-expense",
		MoneySourceID:     "ms-cash",
		CategoryID:        "cat-food",
		Amount:            "12.50",
		TransactionDate:   time.Now().UTC(),
		Description:       description,
	}
	return client.PostJSON(ctx, "/transactions", req, nil)
}

func printFeed(feed *services.FeedService) {
	groups := feed.Groups()
	if len(groups) == 0 {
		fmt.Println(feed.EmptyMessage())
		return
	}
	for _, group := range groups {
		fmt.Println(group.Date)
		for _, txn := range group.Transactions {
			amount := utils.FormatSigned(txn.Amount, "$", txn.TransactionType.IsIncome)
			line := fmt.Sprintf("  %s  %-16s %s", txn.TransactionDate.Format("15:04"), txn.Category.Name, amount)
			if txn.Description != "" {
				line += "  " + txn.Description
			}
			fmt.Println(line)
		}
	}
	fmt.Printf("%d of %d transactions loaded\n", len(feed.Visible()), feed.TotalCount())
}
