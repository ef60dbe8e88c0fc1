package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "modernc.org/sqlite"

	"github.com/velstore/product-intake/config"
	"github.com/velstore/product-intake/pkg/db"
	"github.com/velstore/product-intake/pkg/models"
	"github.com/velstore/product-intake/pkg/notifier"
	"github.com/velstore/product-intake/pkg/uploader"
)

const (
	maxImagesPerSubmission = 6
	maxMultipartMemory     = 32 << 20

	msgNameContactRequired = "Name and contact are required."
	msgTooManyImages       = "A maximum of 6 images is allowed."
	msgInvalidForm         = "Invalid form data."
)

// ValidationError marks client input that fails the submission checks; it
// maps to a 400 response before any side-effecting step runs.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type Service struct {
	cfg      *config.Config
	e        *echo.Echo
	DB       db.SubmissionDatabase
	uploader uploader.ImageUploader
	notifier notifier.Notifier
	sqlDB    *sqlx.DB
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		e:   echo.New(),
		cfg: cfg}
}

func (s *Service) StartService() error {
	//db init
	dB, err := sqlx.Open("sqlite", s.cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %v", err)
	}
	log.Println("opened SQLite database at", s.cfg.SQLite.Path)
	s.sqlDB = dB
	s.DB, err = db.NewSubmissionDatabase(s.cfg.SQLite.AutoCreate, dB)
	if err != nil {
		return fmt.Errorf("failed to initialize submission database: %v", err)
	}

	//minio init
	s.uploader, err = uploader.NewMinioUploader(s.cfg.Minio)
	if err != nil {
		return fmt.Errorf("failed to initialize uploader: %v", err)
	}
	log.Println("connected to Minio")

	//mail relay (noop when unconfigured)
	s.notifier = notifier.NewNotifier(s.cfg.Email)
	if s.cfg.Email.Configured() {
		log.Println("mail relay configured")
	} else {
		log.Println("no mail relay configured, notifications disabled")
	}

	s.registerRoutes()

	if err := s.e.Start(s.cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %v", err)
	}
	return nil
}

func (s *Service) registerRoutes() {
	s.e.Use(middleware.Logger())
	s.e.Use(middleware.Recover())

	api := s.e.Group("/api")
	api.POST("/submit", s.HandleSubmit)

	admin := s.e.Group("/admin")
	if s.cfg.Server.AdminUsername != "" && s.cfg.Server.AdminPassword != "" {
		admin.Use(middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
			return username == s.cfg.Server.AdminUsername && password == s.cfg.Server.AdminPassword, nil
		}))
	}
	admin.GET("/submissions", s.HandleListSubmissions)
}

// Shutdown stops the HTTP server and releases the database handle.
func (s *Service) Shutdown(ctx context.Context) error {
	if err := s.e.Shutdown(ctx); err != nil {
		return err
	}
	if s.sqlDB != nil {
		return s.sqlDB.Close()
	}
	return nil
}

func (s *Service) HandleSubmit(c echo.Context) error {
	if err := s.processSubmission(c); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Message})
		}
		log.Printf("submission failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error", "details": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// processSubmission runs the intake workflow in a single pass: validate,
// parse links, upload each image in attachment order, persist, notify.
// The first failing step aborts the rest; earlier uploads are never
// compensated, so a later failure leaves orphaned remote assets.
func (s *Service) processSubmission(c echo.Context) error {
	ctx := c.Request().Context()

	name := strings.TrimSpace(c.FormValue("name"))
	contact := strings.TrimSpace(c.FormValue("contact"))
	if name == "" || contact == "" {
		return &ValidationError{Message: msgNameContactRequired}
	}
	email := strings.TrimSpace(c.FormValue("email"))
	links := ParseLinks(c.FormValue("links"))

	images, err := extractImagesFromRequest(c)
	if err != nil {
		return err
	}

	imageURLs := make([]string, 0, len(images))
	for _, image := range images {
		url, err := s.uploader.Upload(ctx, image)
		if err != nil {
			return err
		}
		imageURLs = append(imageURLs, url)
	}

	id, err := s.DB.CreateSubmission(ctx, name, contact, email, links, imageURLs)
	if err != nil {
		return err
	}

	sub := &models.Submission{
		ID:           id,
		Name:         name,
		Contact:      contact,
		Email:        email,
		ProductLinks: links,
		ImageURLs:    imageURLs,
		Status:       models.StatusPending,
	}
	if err := s.notifier.NotifyInternal(ctx, sub); err != nil {
		return err
	}
	if sub.Email != "" {
		if err := s.notifier.NotifyCustomer(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}

// ParseLinks splits newline-delimited input into trimmed, non-empty lines,
// preserving order.
func ParseLinks(raw string) []string {
	links := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			links = append(links, line)
		}
	}
	return links
}

func extractImagesFromRequest(c echo.Context) ([][]byte, error) {
	c.Request().ParseMultipartForm(maxMultipartMemory)
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, &ValidationError{Message: msgInvalidForm}
	}

	files := form.File["images"]
	if len(files) > maxImagesPerSubmission {
		return nil, &ValidationError{Message: msgTooManyImages}
	}

	images := make([][]byte, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, data)
	}
	return images, nil
}

func (s *Service) HandleListSubmissions(c echo.Context) error {
	submissions, err := s.DB.ListSubmissions(c.Request().Context())
	if err != nil {
		log.Printf("listing submissions failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error", "details": err.Error()})
	}
	return c.JSON(http.StatusOK, submissions)
}
