package app

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shandysiswandi/yatri/internal/pkg/config"
	"github.com/shandysiswandi/yatri/internal/pkg/mail"
	"github.com/shandysiswandi/yatri/internal/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailHealth(t *testing.T) {
	smtp, err := mail.NewSMTP(mail.SMTPConfig{Username: "portal@yatri.test", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, router.HealthUp, mailHealth(smtp))
	assert.Equal(t, router.HealthDisabled, mailHealth(mail.NewDisabled(mail.ErrConfigurationMissing)))

	smtp.MarkUnavailable(errors.New("535 authentication failed"))
	assert.Equal(t, mail.ErrTransportUnavailable.Error(), mailHealth(smtp))
}

func TestShippedConfig_MailDefaults(t *testing.T) {
	data, err := os.ReadFile("../../config/config.yaml")
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", data)
	require.NoError(t, err)

	assert.Equal(t, mail.DefaultMaxConnections, cfg.GetInt("mail.max_connections"))
	assert.Equal(t, mail.DefaultMaxMessages, cfg.GetInt("mail.max_messages"))
	assert.Equal(t, mail.DefaultRateLimit, cfg.GetInt("mail.rate_limit_per_minute"))
	assert.Equal(t, mail.DefaultVerifyTimeout, cfg.GetSecond("mail.verify_timeout_seconds"))
	assert.Equal(t, mail.DefaultSendTimeout, cfg.GetSecond("mail.send_timeout_seconds"))
	assert.GreaterOrEqual(t, cfg.GetSecond("modules.notification.idempotency.lock_seconds"), time.Minute)
}
