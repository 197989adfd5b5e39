package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fabiomatricardi/cm-log-system/configs"
	"github.com/fabiomatricardi/cm-log-system/repository"
	"github.com/fabiomatricardi/cm-log-system/routes"
	"github.com/fabiomatricardi/cm-log-system/services"
	"github.com/fabiomatricardi/cm-log-system/watcher"
	"github.com/fabiomatricardi/cm-log-system/ws"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := configs.LoadConfig()
	if servePort != "" {
		cfg.Port = servePort
	}

	// DB (admins + notification history)
	db, err := configs.OpenDB(cfg.DBSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := configs.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword, false); err != nil {
		return fmt.Errorf("seed admin failed: %w", err)
	}

	store, err := repository.NewLogStore(repository.LogStoreConfig{Path: cfg.LogDBFile})
	if err != nil {
		return err
	}
	attachments, err := services.NewAttachmentStorage(cfg.AttachmentsDir)
	if err != nil {
		return fmt.Errorf("attachments directory: %w", err)
	}
	departments, err := configs.LoadDepartments(cfg.DepartmentsFile)
	if err != nil {
		return err
	}

	hub := ws.NewLogHub()
	go hub.Run()
	defer hub.Stop()

	w, err := watcher.New(cfg.LogDBFile, watcher.DefaultDebounce, func() {
		hub.NotifyChange(services.ChangeReloaded, 0)
	})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		log.Printf("⚠️ log file watcher disabled: %v", err)
	}
	defer w.Stop()

	localIP := configs.LocalIP()
	networkURL := fmt.Sprintf("http://%s:%s", localIP, cfg.Port)

	mailer := services.NewSMTPMailer(services.MailerConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Sender:   cfg.SenderEmail,
		Password: cfg.SMTPPassword,
		Timeout:  cfg.MailTimeout,
		SystemIP: localIP,
	})
	if !mailer.Configured() {
		log.Println("⚠️ SENDER_EMAIL or app password missing: reports will be saved but not emailed")
	}

	notifications := repository.NewNotificationRepository(db)
	svc := routes.Services{
		Logs: services.NewLogService(store, hub),
		Submissions: services.NewSubmissionService(services.SubmissionDeps{
			Store:          store,
			Attachments:    attachments,
			Recipients:     repository.NewRecipientRepository(),
			Mailer:         mailer,
			History:        notifications,
			Changes:        hub,
			Departments:    departments,
			MaxAttachments: cfg.MaxAttachments,
		}),
		Attachments:   attachments,
		Auth:          services.NewAuthService(repository.NewAdminRepository(db), cfg.JWTSecret, cfg.JWTTTL),
		Recipients:    services.NewRecipientService(repository.NewRecipientRepository(), departments),
		Exports:       services.NewExportService(store, cfg.ExportDir),
		Notifications: notifications,
		Hub:           hub,
		Departments:   departments,
		NetworkURL:    networkURL,
	}

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, svc, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printBanner(cfg, departments, networkURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Println("🚀 Server running at", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printBanner(cfg *configs.Config, departments configs.Departments, networkURL string) {
	line := strings.Repeat("= ", 35)
	fmt.Println("\n" + line)
	fmt.Println("🚀 CORRECTIVE MAINTENANCE LOG SYSTEM - READY")
	fmt.Println(line)
	fmt.Printf("✅ Attachments directory: %s\n", absPath(cfg.AttachmentsDir))
	fmt.Printf("✅ Database file: %s\n", absPath(cfg.LogDBFile))
	for _, d := range departments.Items {
		fmt.Printf("✅ %s recipients file: %s\n", d.Name, absPath(d.RecipientsFile))
	}
	fmt.Println("\n🌐 ACCESS VIA:")
	fmt.Printf("   • Local: http://localhost:%s\n", cfg.Port)
	fmt.Printf("   • Network: %s\n", networkURL)
	fmt.Println(line + "\n")
}
