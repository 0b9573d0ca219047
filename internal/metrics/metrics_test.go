package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	m := New("fittrack")

	m.RecordLogin(LoginSuccess)
	m.RecordLogin(LoginFailure)
	m.RecordLogin(LoginFailure)
	m.RecordProgressLog(true)
	m.RecordProgressLog(false)
	m.RecordProgressLog(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(LoginFailure)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(LoginThrottled)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProgressLogsTotal.WithLabelValues("true")))
}

func TestInstancesAreIsolated(t *testing.T) {
	a, b := New("fittrack"), New("fittrack")
	a.RecordLogin(LoginSuccess)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.LoginsTotal.WithLabelValues(LoginSuccess)))
}

func TestHandler(t *testing.T) {
	m := New("fittrack")
	m.RecordLogin(LoginThrottled)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fittrack_logins_total{result="throttled"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
