// file: internals/features/finance/reminders/service/dispatcher.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	reminderModel "sekolahku_backend/internals/features/finance/reminders/model"
)

// =======================================================
// KONFIGURASI
// =======================================================

type ReminderConfig struct {
	CronSpec  string
	GraceDays int
	AMQPURL   string
	Exchange  string
}

func LoadReminderConfig() ReminderConfig {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("REMINDER_CRON", "@hourly")
	v.SetDefault("REMINDER_GRACE_DAYS", 7)
	v.SetDefault("AMQP_EXCHANGE", "sekolahku.reminders")

	return ReminderConfig{
		CronSpec:  v.GetString("REMINDER_CRON"),
		GraceDays: v.GetInt("REMINDER_GRACE_DAYS"),
		AMQPURL:   v.GetString("AMQP_URL"),
		Exchange:  v.GetString("AMQP_EXCHANGE"),
	}
}

// =======================================================
// PUBLISHER
// =======================================================

type Publisher interface {
	Publish(ctx context.Context, task ReminderTask) error
	Close() error
}

// AMQPPublisher menembakkan task pengingat ke exchange fanout;
// worker notifikasi (email/WA) mengonsumsi di sisi lain.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, task ReminderTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// logPublisher dipakai saat AMQP_URL kosong (dev lokal).
type logPublisher struct{}

func (logPublisher) Publish(_ context.Context, task ReminderTask) error {
	log.Printf("[REMINDER] 🔔 invoice=%s student=%s due=%s amount=%d",
		task.InvoiceID, task.StudentName, task.DueDate.Format("2006-01-02"), task.DueAmountIDR)
	return nil
}

func (logPublisher) Close() error { return nil }

// =======================================================
// DISPATCHER
// =======================================================

type Dispatcher struct {
	DB        *gorm.DB
	Publisher Publisher
	GraceDays int
}

func NewDispatcher(db *gorm.DB, pub Publisher, graceDays int) *Dispatcher {
	if pub == nil {
		pub = logPublisher{}
	}
	return &Dispatcher{DB: db, Publisher: pub, GraceDays: graceDays}
}

// Run mengeksekusi satu putaran: scan tagihan jatuh tempo, catat log
// (unik per invoice+tanggal, re-run aman), lalu publish.
func (d *Dispatcher) Run(ctx context.Context, asOf time.Time) (sent int, err error) {
	tasks, err := DueReminders(d.DB, asOf, d.GraceDays)
	if err != nil {
		return 0, err
	}

	for _, task := range tasks {
		entry := reminderModel.ReminderLog{
			ReminderLogInvoiceID: task.InvoiceID,
			ReminderLogFireDate:  task.FireDate,
		}
		res := d.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reminder_log_invoice_id"}, {Name: "reminder_log_fire_date"}},
			DoNothing: true,
		}).Create(&entry)
		if res.Error != nil {
			log.Printf("[REMINDER] ❌ log invoice=%s: %v", task.InvoiceID, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			// sudah ditembak oleh putaran / instance lain
			continue
		}

		if err := d.Publisher.Publish(ctx, task); err != nil {
			log.Printf("[REMINDER] ❌ publish invoice=%s: %v", task.InvoiceID, err)
			continue
		}
		sent++
	}

	log.Printf("[REMINDER] round done asOf=%s candidates=%d sent=%d",
		asOf.Format("2006-01-02"), len(tasks), sent)
	return sent, nil
}

// StartReminderScheduler menjalankan dispatcher di cron background.
// Mengembalikan fungsi stop untuk graceful shutdown.
func StartReminderScheduler(db *gorm.DB) (stop func()) {
	cfg := LoadReminderConfig()

	var pub Publisher
	if cfg.AMQPURL != "" {
		p, err := NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange)
		if err != nil {
			log.Printf("[REMINDER] ⚠️ amqp unavailable, falling back to log publisher: %v", err)
		} else {
			pub = p
		}
	}
	d := NewDispatcher(db, pub, cfg.GraceDays)

	c := cron.New()
	if _, err := c.AddFunc(cfg.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := d.Run(ctx, time.Now()); err != nil {
			log.Printf("[REMINDER] ❌ round failed: %v", err)
		}
	}); err != nil {
		log.Printf("[REMINDER] ❌ invalid cron spec %q: %v", cfg.CronSpec, err)
		return func() {}
	}
	c.Start()
	log.Printf("[REMINDER] scheduler started spec=%q grace=%dd", cfg.CronSpec, cfg.GraceDays)

	return func() {
		c.Stop()
		d.Publisher.Close()
	}
}
