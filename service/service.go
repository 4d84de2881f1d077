package service

import (
	"context"
	"fmt"
	"ghprofile/charts"
	"ghprofile/config"
	"ghprofile/github"
	"ghprofile/logger"
	"ghprofile/models"
	"ghprofile/output"
	"ghprofile/report"
	"ghprofile/stats"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GitHubClientInterface abstracts the GitHub client operations needed by the service
// (for testability)
type GitHubClientInterface interface {
	FetchUser(ctx context.Context, username string) (*models.User, error)
	FetchRepositories(ctx context.Context, username string) ([]models.Repository, error)
	FetchLanguageBytes(ctx context.Context, username string, repos []models.Repository) (*models.LanguageBytes, error)
	APICalls() int
}

// ChartRendererInterface abstracts chart rendering (for testability)
type ChartRendererInterface interface {
	RenderLanguageChart(shares []models.LanguageShare) ([]string, error)
	RenderDashboard(snap *models.StatsSnapshot) ([]string, error)
}

// Service errors
var (
	ErrServiceInit    = fmt.Errorf("service initialization error")
	ErrNoUserData     = fmt.Errorf("no user data")
	ErrNoRepositories = fmt.Errorf("no repositories")
)

// Service runs the profile report pipeline.
type Service struct {
	config   *config.Config
	client   GitHubClientInterface
	renderer ChartRendererInterface
	runID    string
}

// NewService creates a new service instance from an explicitly loaded
// configuration.
func NewService(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil configuration", ErrServiceInit)
	}

	client := github.NewClient(github.Options{
		Token:    cfg.Token,
		Username: cfg.Username,
		Timeout:  cfg.HTTPTimeout,
		PageSize: cfg.PageSize,
		Pause:    cfg.RequestPause,
	})
	renderer := charts.NewRenderer(cfg.OutputDir, cfg.ChartLanguageLimit)

	runID := uuid.NewString()
	logger.Info("Service initialized",
		zap.String("run_id", runID),
		zap.String("username", cfg.Username),
		zap.String("output_dir", cfg.OutputDir),
		zap.Bool("authenticated", cfg.Token != ""))

	return &Service{
		config:   cfg,
		client:   client,
		renderer: renderer,
		runID:    runID,
	}, nil
}

// Run executes the full pipeline: fetch profile and repositories,
// compute statistics, fetch language bytes, render charts, write the
// report and snapshot. It returns the manifest of files written.
// Partial outputs from a failed run are left on disk.
func (s *Service) Run(ctx context.Context) (*output.Manifest, error) {
	started := time.Now()
	username := s.config.Username

	user, err := s.client.FetchUser(ctx, username)
	if err != nil {
		logger.Error("Aborting run, user profile unavailable",
			zap.String("username", username),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNoUserData, err)
	}
	if user.IsZero() {
		logger.Error("Aborting run, user profile is empty",
			zap.String("username", username))
		return nil, ErrNoUserData
	}

	repos, err := s.client.FetchRepositories(ctx, username)
	if err != nil && len(repos) > 0 {
		// Pagination stopped early; report on what was fetched.
		logger.Warn("Continuing with partially fetched repositories",
			zap.Int("count", len(repos)),
			zap.Error(err))
	}
	if len(repos) == 0 {
		logger.Error("Aborting run, no repositories available",
			zap.String("username", username),
			zap.Error(err))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoRepositories, err)
		}
		return nil, ErrNoRepositories
	}

	window := time.Duration(s.config.RecentActivityDays) * 24 * time.Hour
	snap := stats.Compute(repos, user, time.Now().UTC(), window)
	snap.RunID = s.runID

	languageBytes, err := s.client.FetchLanguageBytes(ctx, username, repos)
	if err != nil {
		logger.Warn("Some repository languages could not be fetched", zap.Error(err))
	}
	shares := stats.FoldSmall(stats.LanguagePercentages(languageBytes), s.config.FoldThresholdPercent)

	var chartPaths []string
	files, err := s.renderer.RenderLanguageChart(shares)
	if err != nil {
		return nil, fmt.Errorf("language chart rendering failed: %w", err)
	}
	chartPaths = append(chartPaths, files...)

	files, err = s.renderer.RenderDashboard(snap)
	if err != nil {
		return nil, fmt.Errorf("dashboard rendering failed: %w", err)
	}
	chartPaths = append(chartPaths, files...)

	content, err := report.Build(snap, s.config.ReportTopLanguages, snap.GeneratedAt)
	if err != nil {
		return nil, fmt.Errorf("report build failed: %w", err)
	}

	reportPath := filepath.Join(s.config.OutputDir, output.ReportFile)
	if err := output.WriteFile(reportPath, []byte(content)); err != nil {
		return nil, err
	}

	snapshotPath := filepath.Join(s.config.OutputDir, output.SnapshotFile)
	if err := output.WriteSnapshot(snapshotPath, snap); err != nil {
		return nil, err
	}

	manifest := &output.Manifest{
		OutputDir:    s.config.OutputDir,
		ReportPath:   reportPath,
		SnapshotPath: snapshotPath,
		LogPath:      filepath.Join(s.config.OutputDir, output.LogFile),
		ChartPaths:   chartPaths,
		APICalls:     s.client.APICalls(),
		Elapsed:      time.Since(started),
	}

	logger.Info("Run completed",
		zap.String("run_id", s.runID),
		zap.String("username", snap.Username),
		zap.Int("repositories", snap.TotalRepos),
		zap.Int("languages", len(snap.LanguageCounts)),
		zap.Int("api_calls", manifest.APICalls),
		zap.Duration("elapsed", manifest.Elapsed))

	return manifest, nil
}
