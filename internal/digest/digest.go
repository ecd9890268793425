package digest

import (
	"context"
	"errors"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/forecast"
	"github.com/SvetozarP/finance-tracker/internal/models"
	"github.com/SvetozarP/finance-tracker/internal/repository"
	"github.com/SvetozarP/finance-tracker/internal/utils/email"
	"github.com/sirupsen/logrus"
)

// History window and projection horizon for the scheduled digest.
const (
	lookbackMonths = 12
	horizonMonths  = 3
)

// Job emails each user a forecast summary on a schedule. Users without
// enough history are skipped, not failed.
type Job struct {
	repo   *repository.Repository
	engine *forecast.Engine
	sender *email.Sender
	log    *logrus.Logger
}

// NewJob creates a new digest job
func NewJob(repo *repository.Repository, engine *forecast.Engine, sender *email.Sender, log *logrus.Logger) *Job {
	return &Job{repo: repo, engine: engine, sender: sender, log: log}
}

// Run generates and sends a digest for every user
func (j *Job) Run() {
	users, err := j.repo.ListUsers()
	if err != nil {
		j.log.Errorf("Digest run failed to list users: %v", err)
		return
	}

	now := time.Now().UTC()
	query := models.ForecastQuery{
		StartDate: now.AddDate(0, -lookbackMonths, 0),
		EndDate:   now.AddDate(0, horizonMonths, 0),
	}

	sent := 0
	for _, user := range users {
		query.UserID = user.ID
		result, err := j.engine.GenerateFinancialForecast(context.Background(), query)
		if err != nil {
			var dataErr *forecast.InsufficientDataError
			if errors.As(err, &dataErr) {
				j.log.Debugf("Skipping digest for user %d: %v", user.ID, err)
				continue
			}
			j.log.Errorf("Digest forecast failed for user %d: %v", user.ID, err)
			continue
		}
		if err := j.sender.SendForecastDigest(user.Email, user.Username, result); err != nil {
			continue
		}
		sent++
	}
	j.log.Infof("Digest run complete: %d of %d users emailed", sent, len(users))
}
