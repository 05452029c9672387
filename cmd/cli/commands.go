package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/akeren/interest-waitlist/config"
	"github.com/akeren/interest-waitlist/domain/interest"
	"github.com/akeren/interest-waitlist/internal/form"
	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/auth"
	"github.com/akeren/interest-waitlist/pkg/client"
	"github.com/akeren/interest-waitlist/pkg/constants"
	"github.com/akeren/interest-waitlist/pkg/migrations"
	"github.com/akeren/interest-waitlist/pkg/utils"
	"gorm.io/gorm"
)

const defaultBaseURL = "http://localhost:8080"

func connectDatabase(logger *log.Logger) (*gorm.DB, *sql.DB, error) {
	appConfig := config.NewAppConfig()

	db, err := config.NewDatabase(logger, &config.DBConfig{ConnectAttempts: appConfig.DBConnectAttempts})
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get SQL DB instance: %w", err)
	}

	return db, sqlDB, nil
}

func runMigrate(logger *log.Logger, args []string) error {
	op := "up"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		op, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	steps := fs.Int("steps", 1, "number of migrations to roll back (down only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch op {
	case "up", "down", "version":
	default:
		return fmt.Errorf("unknown migrate operation %q (want up, down or version)", op)
	}

	_, sqlDB, err := connectDatabase(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB after migration", "error", err.Error())
		}
	}()

	cfg := migrations.Config{
		Dir:    utils.GetEnvTrimmed("MIGRATIONS_DIR"),
		Logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch op {
	case "up":
		if err := migrations.Up(ctx, sqlDB, cfg); err != nil {
			return err
		}
		logger.Info("Database migrations completed")

	case "down":
		if err := migrations.Down(ctx, sqlDB, cfg, *steps); err != nil {
			return err
		}
		logger.Info("Database migrations rolled back", "steps", *steps)

	case "version":
		status, err := migrations.Version(ctx, sqlDB, cfg)
		if err != nil {
			return err
		}
		if !status.Applied {
			fmt.Println("no migrations applied")
			return nil
		}
		fmt.Printf("version %d (dirty=%t)\n", status.Version, status.Dirty)
	}

	return nil
}

func runSubmissions(logger *log.Logger, args []string) error {
	if len(args) == 0 || (args[0] != "list" && args[0] != "delete") {
		return errors.New("expected list or delete")
	}
	if args[0] == "delete" && len(args) < 2 {
		return errors.New("usage: submissions delete <id>")
	}

	db, sqlDB, err := connectDatabase(logger)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	appConfig := config.NewAppConfig()

	var cache interest.Cache
	if c := config.NewCacheConfig().NewCacheOrNil(logger); c != nil {
		cache = c
		defer config.CloseCache(c, logger)
	}

	service := interest.NewInterestServiceFactory(db, logger, cache, appConfig.CountCacheTTL).CreateService()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("submissions list", flag.ContinueOnError)
		limit := fs.Int("limit", constants.DefaultAdminListLimit, "maximum rows to print")
		offset := fs.Int("offset", 0, "rows to skip")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		result, err := service.ListSubmissions(ctx, *limit, *offset)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSUBSCRIBED\tCREATED AT")
		for _, s := range result.Submissions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", s.ID, s.Name, s.Email, s.Subscribed, s.CreatedAt)
		}
		return w.Flush()

	case "delete":
		if err := service.DeleteSubmission(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[1])
		return nil

	default:
		return fmt.Errorf("unknown submissions operation %q", args[0])
	}
}

func runAdminToken(args []string) error {
	fs := flag.NewFlagSet("admin-token", flag.ContinueOnError)
	subject := fs.String("subject", "cli", "token subject, recorded in admin audit logs")
	ttl := fs.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tokens, err := auth.NewAdminTokens(config.NewAppConfig().AdminJWTSecret)
	if err != nil {
		return fmt.Errorf("ADMIN_JWT_SECRET: %w", err)
	}

	token, err := tokens.Issue(*subject, *ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func newFormController(logger *log.Logger, baseURL string, optimistic bool) *form.Controller {
	return form.NewController(client.New(baseURL, logger), form.Options{
		OptimisticOnNetworkError: optimistic,
		Logger:                   logger,
	})
}

func runSubmit(logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	subscribed := fs.Bool("subscribed", false, "opt in to the newsletter")
	baseURL := fs.String("base-url", utils.GetEnvOrDefault("WAITLIST_BASE_URL", defaultBaseURL), "server base URL")
	optimistic := fs.Bool("optimistic", false, "treat network failures as success")
	if err := fs.Parse(args); err != nil {
		return err
	}

	controller := newFormController(logger, *baseURL, *optimistic)
	controller.SetName(*name)
	controller.SetEmail(*email)
	controller.SetSubscribed(*subscribed)

	snap, err := controller.Submit(context.Background())
	if errors.Is(err, form.ErrInvalidInput) {
		for field, msg := range snap.Errors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		return err
	}
	if err != nil {
		return err
	}

	if snap.Status != form.StatusSuccess {
		for field, msg := range snap.Errors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		return errors.New(snap.Message)
	}

	fmt.Println(snap.Message)
	fmt.Printf("%d people have signed up\n", snap.Count)
	return nil
}

func runCount(logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("count", flag.ContinueOnError)
	baseURL := fs.String("base-url", utils.GetEnvOrDefault("WAITLIST_BASE_URL", defaultBaseURL), "server base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	controller := newFormController(logger, *baseURL, false)
	if err := controller.RefreshCount(context.Background()); err != nil {
		return err
	}

	fmt.Println(controller.Snapshot().Count)
	return nil
}
