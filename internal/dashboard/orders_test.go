package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/FinPainel/internal/api"
	"github.com/atinyakov/FinPainel/internal/models"
)

func TestOrdensCriarValidation(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	o := NewOrdens(api.New(srv.URL, "", &stubSession{token: "t"}, zap.NewNop()), zap.NewNop())
	valid := OrdemBuffer{Descricao: "site", Valor: 100, Inicio: "01/02/2026", Fim: "28/02/2026"}

	tests := []struct {
		name     string
		clientID string
		mutate   func(*OrdemBuffer)
		wantErr  error
	}{
		{name: "missing description", clientID: "c1", mutate: func(b *OrdemBuffer) { b.Descricao = "" }, wantErr: ErrOrdemCamposObrigatorios},
		{name: "zero value", clientID: "c1", mutate: func(b *OrdemBuffer) { b.Valor = 0 }, wantErr: ErrOrdemCamposObrigatorios},
		{name: "missing start", clientID: "c1", mutate: func(b *OrdemBuffer) { b.Inicio = "" }, wantErr: ErrOrdemCamposObrigatorios},
		{name: "missing client", clientID: "", mutate: func(*OrdemBuffer) {}, wantErr: ErrOrdemCamposObrigatorios},
		{name: "ISO date rejected", clientID: "c1", mutate: func(b *OrdemBuffer) { b.Inicio = "2026-02-01" }, wantErr: ErrOrdemDataInvalida},
		{name: "nonsense date", clientID: "c1", mutate: func(b *OrdemBuffer) { b.Fim = "31/02/2026" }, wantErr: ErrOrdemDataInvalida},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			_, err := o.Criar(context.Background(), tt.clientID, b)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.False(t, called, "validation failures must block before any network call")
}

func TestOrdensCriarConvertsDates(t *testing.T) {
	var got models.OrdemInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"o1","description":"site","value":100,"isPaid":false,"startDate":"2026-02-01","endDate":"2026-02-28","clientId":"c1"}`))
	}))
	defer srv.Close()

	o := NewOrdens(api.New(srv.URL, "", &stubSession{token: "t"}, zap.NewNop()), zap.NewNop())
	created, err := o.Criar(context.Background(), "c1", OrdemBuffer{
		Descricao: "site", Valor: 100, Inicio: "01/02/2026", Fim: "28/02/2026",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-02-01", got.StartDate)
	assert.Equal(t, "2026-02-28", got.EndDate)
	assert.Equal(t, "c1", got.ClientID)
	assert.Equal(t, "o1", created.ID)
}

func TestDateConversions(t *testing.T) {
	assert.Equal(t, "25/12/2026", ISODateToBrazilian("2026-12-25"))
	// Unparseable input is returned as-is for display.
	assert.Equal(t, "garbage", ISODateToBrazilian("garbage"))

	iso, err := brazilianDateToISO("05/01/2026")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", iso)

	_, err = brazilianDateToISO("2026-01-05")
	assert.Error(t, err)
}
