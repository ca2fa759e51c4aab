package platelookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ykovtun/avtosos/internal/pkg/apperrors"
	"github.com/ykovtun/avtosos/internal/pkg/circuitbreaker"
	"github.com/ykovtun/avtosos/internal/pkg/logger"
	"github.com/ykovtun/avtosos/internal/pkg/models"
)

// Client resolves vehicle data from a license plate by scraping the
// public registry pages. The upstream has no API, so responses are
// parsed from HTML definition lists.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewClient creates a plate lookup client
func NewClient(cfg models.LookupConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("plate-lookup")),
	}
}

// dt/dd pairs on the vehicle page, e.g. <dt>Марка, модель</dt><dd>KIA Sportage</dd>
var fieldRe = regexp.MustCompile(`(?s)<dt[^>]*>\s*([^<]+?)\s*</dt>\s*<dd[^>]*>\s*([^<]+?)\s*</dd>`)

var fieldNames = map[string]string{
	"Марка, модель":    "brand_model",
	"Рік випуску":      "year",
	"VIN-код":          "vin",
	"Колір":            "color",
	"Тип":              "type",
	"Тип кузова":       "body",
	"Тип палива":       "fuel",
	"Об'єм двигуна":    "engine_volume",
	"Повна маса":       "weight",
}

// Lookup fetches vehicle data for a normalized license plate
func (c *Client) Lookup(ctx context.Context, plate string) (*models.PlateInfo, error) {
	plate = strings.ToUpper(strings.ReplaceAll(plate, " ", ""))
	if plate == "" {
		return nil, apperrors.Validation("license plate is required")
	}

	var info *models.PlateInfo
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		page, err := c.fetch(ctx, plate)
		if err != nil {
			return err
		}
		info = ParsePage(plate, page)
		return nil
	})
	if err != nil {
		logger.Warn("Plate lookup failed",
			logger.String("plate", plate),
			logger.Err(err))
		return nil, apperrors.Wrap(apperrors.KindInternal, "plate lookup failed", err)
	}

	if info.BrandModel == "" {
		return nil, apperrors.NotFound("vehicle not found for plate " + plate)
	}
	return info, nil
}

func (c *Client) fetch(ctx context.Context, plate string) (string, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(plate))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; avtosos/1.0)")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ParsePage extracts the known vehicle fields from the registry HTML
func ParsePage(plate string, page string) *models.PlateInfo {
	info := &models.PlateInfo{LicensePlate: plate}

	for _, match := range fieldRe.FindAllStringSubmatch(page, -1) {
		label := strings.TrimSpace(match[1])
		value := strings.TrimSpace(match[2])
		if value == "" {
			continue
		}
		switch fieldNames[label] {
		case "brand_model":
			info.BrandModel = value
		case "year":
			if year, err := strconv.Atoi(value); err == nil {
				info.Year = &year
			}
		case "vin":
			info.VIN = value
		case "color":
			info.Color = value
		case "type":
			info.Type = value
		case "body":
			info.Body = value
		case "fuel":
			info.Fuel = value
		case "engine_volume":
			info.EngineVolume = value
		case "weight":
			info.Weight = value
		}
	}
	return info
}
