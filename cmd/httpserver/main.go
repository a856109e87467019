package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"merchex/auth"
	"merchex/band"
	"merchex/contact"
	"merchex/dynamodb"
	"merchex/group"
	"merchex/httpserver"
	"merchex/listing"
	"merchex/mail"
	"merchex/pkg/bcrypt"
	"merchex/pkg/config"
	"merchex/pkg/jwt"
	"merchex/pkg/logger"
	"merchex/pkg/sentry"
	"merchex/postgres"
	"merchex/user"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalw("cannot init sentry", zap.Error(err))
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
		Debug:    cfg.AppEnv == "local",
	})
	if err != nil {
		log.Fatalw("cannot open postgres connection", zap.Error(err))
	}

	mailer, err := mail.NewSMTPMailer(mail.Options{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Pass,
		From:     cfg.SMTP.From,
		Timeout:  time.Duration(cfg.SMTP.Timeout) * time.Second,
		Insecure: cfg.SMTP.Insecure,
	})
	if err != nil {
		log.Fatalw("cannot init smtp mailer", zap.Error(err))
	}

	contactOpts := []contact.Option{
		contact.WithRecipient(cfg.Contact.Recipient),
		contact.WithLogger(log),
	}
	archive, err := contactArchive(cfg, db)
	if err != nil {
		log.Fatalw("cannot init contact archive", zap.Error(err))
	}
	if archive != nil {
		contactOpts = append(contactOpts, contact.WithArchive(archive))
	}

	bandRepo := postgres.NewBandRepository(db)
	userRepo := postgres.NewUserRepository(db)
	groupRepo := postgres.NewGroupRepository(db)
	hasher := bcrypt.NewHasher(bcrypt.DefaultCost)
	tokens := jwt.NewJWTProvider(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTL)*time.Second,
		time.Duration(cfg.Auth.RefreshTTL)*time.Second,
	)

	server := httpserver.Default(cfg, httpserver.WithLogger(log))
	server.BandService = band.NewUsecase(bandRepo)
	server.ListingService = listing.NewUsecase(postgres.NewListingRepository(db), bandRepo)
	server.ContactService = contact.NewUsecase(mailer, contactOpts...)
	server.GroupService = group.NewUsecase(groupRepo)
	server.UserService = user.NewUsecase(userRepo, hasher, groupRepo)
	server.AuthService = auth.NewUsecase(userRepo, hasher, tokens)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("server started", "addr", server.Addr, "env", cfg.AppEnv, "contact_archive", cfg.Contact.Archive)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", zap.Error(err))
	}
}

func contactArchive(cfg *config.Config, db *gorm.DB) (contact.Archive, error) {
	switch cfg.Contact.Archive {
	case config.ArchivePostgres:
		return postgres.NewContactRepository(db), nil
	case config.ArchiveDynamoDB:
		archive, err := dynamodb.NewContactArchive(context.Background(), dynamodb.Options{
			Region:        cfg.DynamoDB.Region,
			Endpoint:      cfg.DynamoDB.Endpoint,
			AccessKey:     cfg.DynamoDB.AccessKey,
			SecretKey:     cfg.DynamoDB.SecretKey,
			SessionToken:  cfg.DynamoDB.SessionToken,
			ContactsTable: cfg.DynamoDB.ContactsTable,
		})
		if err != nil {
			return nil, err
		}
		return archive, nil
	}
	return nil, nil
}
