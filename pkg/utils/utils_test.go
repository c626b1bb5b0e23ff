package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Data válida é parseada em UTC", func(t *testing.T) {
		date, err := ParseDate("2024-03-10")

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *date)
	})

	t.Run("Formato inválido retorna erro", func(t *testing.T) {
		date, err := ParseDate("10/03/2024")

		assert.Error(t, err)
		assert.Nil(t, date)
	})

	t.Run("String vazia retorna zero value", func(t *testing.T) {
		date, err := ParseDate("")

		assert.NoError(t, err)
		assert.True(t, date.IsZero())
	})
}

func TestTruncateToUTCDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "Instante UTC com hora é truncado para meia-noite",
			input:    time.Date(2024, 3, 10, 17, 45, 30, 999, time.UTC),
			expected: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Fuso local é convertido antes de truncar",
			input:    time.Date(2024, 3, 10, 22, 0, 0, 0, loc),
			expected: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateToUTCDay(tt.input))
		})
	}
}

func TestRoundWithFourDecimalPlace(t *testing.T) {
	assert.Equal(t, 4.0167, RoundWithFourDecimalPlace(120.5/30.0))
	assert.Equal(t, 0.0, RoundWithFourDecimalPlace(0))
	assert.Equal(t, 1.0, RoundWithFourDecimalPlace(1.00004))
}

func TestMakeRequest(t *testing.T) {
	t.Run("Resposta 200 retorna o corpo", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		data, err := MakeRequest(server.URL, 5*time.Second)

		assert.NoError(t, err)
		assert.Equal(t, `{"data":[]}`, string(data))
	})

	t.Run("Resposta não-200 vira HTTPStatusError com o status original", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		data, err := MakeRequest(server.URL, 5*time.Second)

		assert.Nil(t, data)
		assert.Error(t, err)

		var statusErr *HTTPStatusError
		assert.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	})
}
