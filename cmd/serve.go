package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"doll-web/pkg/config"
	"doll-web/pkg/handlers"
	"doll-web/pkg/logger"
	"doll-web/pkg/services"
)

const shutdownTimeout = 10 * time.Second

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve starts the JSON API used by the site. Content comes from the CMS or,
with CONTENT_SOURCE=files, from CONTENT_DIR, which is watched for changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (default: LISTEN_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Error ignored: Set only fails on an invalid GOMAXPROCS, in which case
	// the runtime default stands.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Debug))

	generated, err := cfg.EnsureSessionSecret()
	if err != nil {
		return err
	}
	if generated {
		logger.Warn("SESSION_SECRET is not set; using a random key, preview sessions end on restart")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := newContentSource(ctx, cfg)
	if err != nil {
		return err
	}
	content := newContentService(src, cfg)

	if cfg.ContentSource == config.SourceFiles {
		watcher, err := services.NewContentWatcher(cfg.ContentDir, content.Cache().Invalidate)
		if err != nil {
			logger.Warn("content changes will not be picked up: %v", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	var recorder services.SubmissionRecorder
	if cfg.SubmissionsDB != "" {
		log, err := services.OpenSubmissionLog(cfg.SubmissionsDB)
		if err != nil {
			return err
		}
		defer log.Close()
		recorder = log
	}

	mailer := services.NewMailer(services.SMTPSettings{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		To:   cfg.ContactEmailTo,
		From: cfg.ContactEmailFrom,
	})
	if !cfg.SMTPConfigured() {
		logger.Warn("SMTP settings missing; contact emails will not be sent")
	}
	captcha := services.NewCaptcha(cfg.RecaptchaSecret, cfg.HcaptchaSecret)
	store := services.NewStrapiSource(ctx, cfg.CMSURL, cfg.CMSToken)
	contact := services.NewContactService(store, mailer, captcha, recorder)

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterConfig{
		API:           handlers.NewAPI(content),
		Contact:       handlers.NewContact(contact),
		Preview:       handlers.NewPreview(cfg.PreviewSecret),
		RateLimiter:   handlers.NewIPRateLimiter(cfg.ContactRatePerMin),
		SessionSecret: cfg.SessionSecret,
	})

	addr := cfg.ListenAddr
	if flagListen != "" {
		addr = flagListen
	}
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s (content source: %s)", addr, cfg.ContentSource)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
