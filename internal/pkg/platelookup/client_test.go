package platelookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

const samplePage = `
<html><body>
<dl>
  <dt>Марка, модель</dt><dd>KIA Sportage</dd>
  <dt>Рік випуску</dt><dd>2019</dd>
  <dt>VIN-код</dt><dd>U5YPH81BDKL123456</dd>
  <dt>Колір</dt><dd>Сірий</dd>
  <dt>Тип палива</dt><dd>Дизель</dd>
  <dt>Об'єм двигуна</dt><dd>1995</dd>
</dl>
</body></html>`

func TestParsePage(t *testing.T) {
	info := ParsePage("AA1234BB", samplePage)

	assert.Equal(t, "AA1234BB", info.LicensePlate)
	assert.Equal(t, "KIA Sportage", info.BrandModel)
	require.NotNil(t, info.Year)
	assert.Equal(t, 2019, *info.Year)
	assert.Equal(t, "U5YPH81BDKL123456", info.VIN)
	assert.Equal(t, "Сірий", info.Color)
	assert.Equal(t, "Дизель", info.Fuel)
	assert.Equal(t, "1995", info.EngineVolume)
}

func TestParsePage_EmptyPage(t *testing.T) {
	info := ParsePage("AA1234BB", "<html></html>")
	assert.Empty(t, info.BrandModel)
	assert.Nil(t, info.Year)
}

func TestLookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/AA1234BB", r.URL.Path)
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	client := NewClient(models.LookupConfig{BaseURL: srv.URL, TimeoutSeconds: 2})

	info, err := client.Lookup(context.Background(), "aa 1234 bb")
	require.NoError(t, err)
	assert.Equal(t, "AA1234BB", info.LicensePlate)
	assert.Equal(t, "KIA Sportage", info.BrandModel)
}

func TestLookup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer srv.Close()

	client := NewClient(models.LookupConfig{BaseURL: srv.URL, TimeoutSeconds: 2})

	_, err := client.Lookup(context.Background(), "XX0000XX")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestLookup_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(models.LookupConfig{BaseURL: srv.URL, TimeoutSeconds: 2})

	_, err := client.Lookup(context.Background(), "AA1234BB")
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestLookup_EmptyPlate(t *testing.T) {
	client := NewClient(models.LookupConfig{BaseURL: "http://localhost", TimeoutSeconds: 1})

	_, err := client.Lookup(context.Background(), "  ")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
