package scheduler

import (
	"context"
	"fmt"

	"estatehub_backend/internal/email"
	"estatehub_backend/internal/inspections/repository"
	"estatehub_backend/platform/apperr"
	"estatehub_backend/platform/config"
	"estatehub_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes scheduled tasks. It runs in its own process (cmd/scheduler)
// so slow email delivery never stalls the API.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   repository.Reader
	mail   email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, mail email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		mail:   mail,
		log:    log,
	}

	mux.HandleFunc(TaskInspectionReminder, w.handleInspectionReminder)

	return w, nil
}

// handleInspectionReminder re-reads the inspection at delivery time: the
// request may have been cancelled, completed, or deleted since the reminder
// was enqueued, and stale reminders must not go out.
func (w *Worker) handleInspectionReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseInspectionReminderPayload(task)
	if err != nil {
		return err
	}

	inspectionID, err := uuid.Parse(payload.InspectionID)
	if err != nil {
		return err
	}

	rec, err := w.repo.GetByID(ctx, inspectionID)
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return nil
		}
		return err
	}

	if rec.Stage.IsTerminal() || rec.InspectionDate == nil {
		return nil
	}

	dateText := rec.InspectionDate.Format("Monday, 2 January 2006")
	if rec.InspectionTime != "" {
		dateText += " at " + rec.InspectionTime
	}

	recipients := []struct {
		name  string
		email string
	}{
		{rec.Buyer.FullName(), rec.Buyer.Email},
		{rec.Seller.FullName(), rec.Seller.Email},
	}
	if rec.Agent != nil {
		recipients = append(recipients, struct {
			name  string
			email string
		}{rec.Agent.FullName(), rec.Agent.Email})
	}

	for _, r := range recipients {
		if r.email == "" {
			continue
		}
		if err := w.mail.SendInspectionReminderEmail(ctx, r.email, r.name, rec.Property.Title, dateText); err != nil {
			w.log.Error("failed to send inspection reminder",
				"error", err,
				"inspectionId", rec.ID,
				"recipient", r.email,
			)
		}
	}

	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
