package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"skip-checkout/models"
	"skip-checkout/pricing"
	"skip-checkout/progress"
	"skip-checkout/session"
	"skip-checkout/utils"
)

//go:embed templates/quote.html
var quoteTemplateSource string

var quoteTemplate = template.Must(template.New("quote").Parse(quoteTemplateSource))

// QuoteData is what the quote template renders
type QuoteData struct {
	Reference      string
	Postcode       string
	Area           string
	Size           int
	HirePeriodDays int
	VATPercent     int
	BasePrice      string
	TaxAmount      string
	Total          string
	Badges         []string
	Steps          []progress.StepStatus
}

// QuoteService renders the quote for a selected skip as HTML or PDF
type QuoteService struct {
	baseURL    string // Where the server renders ?format=html for chromedp to print
	chromePath string
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(baseURL, chromePath string) *QuoteService {
	return &QuoteService{baseURL: baseURL, chromePath: chromePath}
}

// BuildQuoteData derives the quote from the selected skip and the journey
func BuildQuoteData(reference string, skip models.Skip, model progress.Model) (QuoteData, error) {
	price, err := pricing.ForSkip(skip)
	if err != nil {
		return QuoteData{}, err
	}
	return QuoteData{
		Reference:      reference,
		Postcode:       skip.Postcode,
		Area:           skip.Area,
		Size:           skip.Size,
		HirePeriodDays: skip.HirePeriodDays,
		VATPercent:     skip.VAT,
		BasePrice:      utils.FormatGBP(skip.PriceBeforeVAT),
		TaxAmount:      utils.FormatGBP(price.TaxAmount),
		Total:          utils.FormatGBP(price.Total),
		Badges:         session.Badges(skip),
		Steps:          model.Statuses(),
	}, nil
}

// RenderQuoteHTML renders the quote page
func (s *QuoteService) RenderQuoteHTML(data QuoteData) (string, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// detectChromePath returns the configured Chrome path, falling back to
// common installation paths
func (s *QuoteService) detectChromePath() string {
	if s.chromePath != "" {
		if _, err := os.Stat(s.chromePath); err == nil {
			return s.chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GeneratePDF prints the HTML quote of a session to an A4 PDF using chromedp
func (s *QuoteService) GeneratePDF(ctx context.Context, sessionID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := s.detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/checkout/sessions/%s/quote?format=html", s.baseURL, url.PathEscape(sessionID))
	log.Debug().Str("url", renderURL).Msg("rendering quote PDF")

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PDF")
	}

	return pdfBuf, nil
}
