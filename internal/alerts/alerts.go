// Package alerts emails low-stock notifications and a daily aggregate
// summary. Alerting is informational only; failures are logged and never
// surfaced to the ledger caller.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/labforge/labstock/internal/config"
	"github.com/labforge/labstock/internal/models"
	"github.com/labforge/labstock/internal/redissvc"
)

var (
	smtpCfg config.SMTPConfig

	rdb *redis.Client
	ctx context.Context
)

func SetRedisService(rs *redissvc.RedisService) {
	rdb = rs.Rdb()
	ctx = rs.Ctx()
}

func SetSMTPConfig(cfg config.SMTPConfig) {
	smtpCfg = cfg
}

// NotifyStockLevel inspects a component after a ledger movement and sends an
// alert email when it landed at or below its critical-low threshold.
func NotifyStockLevel(c models.Component) {
	status := c.StockStatus()
	if status == models.StatusInStock {
		return
	}

	subject := fmt.Sprintf("Stock alert: %s (%s) is %s", c.Name, c.PartNumber, status)
	body := fmt.Sprintf("Component: %s\nPart number: %s\nQuantity: %d\nThreshold: %d\nLocation: %s\nTime: %s",
		c.Name, c.PartNumber, c.Quantity, c.CriticalLowThreshold, c.LocationBin, time.Now().Format(time.RFC3339))

	sendMail(subject, body, "text/plain")
	logAlertEvent(c, status)
}

func sendMail(subject, body, contentType string) {
	if smtpCfg.Server == "" {
		return
	}

	msg := strings.Join([]string{
		"From: " + smtpCfg.From,
		"To: " + smtpCfg.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: %s; charset=\"UTF-8\"", contentType),
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", smtpCfg.Server, smtpCfg.Port)
	auth := smtp.PlainAuth("", smtpCfg.User, smtpCfg.Password, smtpCfg.Server)
	if smtpCfg.AuthDisabled {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, smtpCfg.From, []string{smtpCfg.To}, []byte(msg)); err != nil {
			log.Printf("failed to send alert email: %v", err)
		}
	}()
}

type AlertLogEntry struct {
	ComponentID int                `json:"component_id"`
	Name        string             `json:"name"`
	PartNumber  string             `json:"part_number"`
	Quantity    int                `json:"quantity"`
	Status      models.StockStatus `json:"status"`
	Time        time.Time          `json:"time"`
}

const DailyAlertLogKey = "stock:alertlog:daily"

func logAlertEvent(c models.Component, status models.StockStatus) {
	if rdb == nil {
		return
	}
	entry := AlertLogEntry{
		ComponentID: c.ID,
		Name:        c.Name,
		PartNumber:  c.PartNumber,
		Quantity:    c.Quantity,
		Status:      status,
		Time:        time.Now(),
	}
	data, _ := json.Marshal(entry)
	_ = rdb.RPush(ctx, DailyAlertLogKey, data).Err()
}

// StartDailySummary sends the aggregate report once a day, near midnight.
func StartDailySummary(interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}
		time.Sleep(time.Until(next))
		SendDailySummary()
	}
}

func SendDailySummary() {
	if rdb == nil {
		return
	}
	entries, err := rdb.LRange(ctx, DailyAlertLogKey, 0, -1).Result()
	if err != nil || len(entries) == 0 {
		return
	}
	_ = rdb.Del(ctx, DailyAlertLogKey).Err()

	var logs []AlertLogEntry
	statusCounts := make(map[models.StockStatus]int)
	for _, item := range entries {
		var entry AlertLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			logs = append(logs, entry)
			statusCounts[entry.Status]++
		}
	}

	var sb strings.Builder
	sb.WriteString("<h2>Daily Stock Alert Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total alerts: <strong>%d</strong></p>", len(logs)))

	sb.WriteString("<h3>By Status</h3><ul>")
	for status, count := range statusCounts {
		sb.WriteString(fmt.Sprintf("<li><code>%s</code>: %d</li>", status, count))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>Full Log</h3><ul>")
	for _, entry := range logs {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> (%s) at qty %d, %s at %s</li>",
			entry.Name, entry.PartNumber, entry.Quantity, entry.Status, entry.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")

	sendMail("Daily Stock Alert Report", sb.String(), "text/html")
}
