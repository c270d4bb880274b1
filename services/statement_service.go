package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/bandkasse/bandkasse/database"
	"github.com/bandkasse/bandkasse/models"
	"github.com/bandkasse/bandkasse/notifications"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	config "github.com/bandkasse/bandkasse/configs"
)

type statementRow struct {
	Date        string
	Description string
	Kind        string
	Amount      string
}

type statementData struct {
	BandName     string
	LogoURL      string
	MusicianName string
	From         string
	To           string
	Rows         []statementRow
	Opening      string
	Net          string
	Closing      string
	GeneratedAt  string
}

// BuildStatement loads a musician's ledger for [from, to] and renders the
// statement HTML with opening, per-range, and closing balances.
func BuildStatement(musicianID uuid.UUID, from, to time.Time) (string, *models.Musician, error) {
	var musician models.Musician
	if err := database.DB.First(&musician, "id = ?", musicianID).Error; err != nil {
		return "", nil, fmt.Errorf("musician not found: %w", err)
	}

	var txns []models.Transaction
	if err := database.DB.
		Where("musician_id = ? AND date <= ?", musicianID, EndOfDay(to)).
		Order("date asc").
		Find(&txns).Error; err != nil {
		return "", nil, err
	}

	balance := BalanceInRange(musician.BaseBalance, txns, from, to)

	rows := make([]statementRow, 0, len(txns))
	for _, t := range txns {
		if t.Date.Before(from) {
			continue
		}
		rows = append(rows, statementRow{
			Date:        t.Date.Format("02.01.2006"),
			Description: t.Description,
			Kind:        t.Kind,
			Amount:      t.Amount.StringFixed(2),
		})
	}

	tmpl, err := template.ParseFiles("templates/statement.html")
	if err != nil {
		return "", nil, err
	}

	data := statementData{
		BandName:     GetSetting(models.SettingBandName),
		LogoURL:      GetSetting(models.SettingLogoURL),
		MusicianName: musician.FullName,
		From:         from.Format("02.01.2006"),
		To:           to.Format("02.01.2006"),
		Rows:         rows,
		Opening:      balance.Opening.StringFixed(2),
		Net:          balance.Net.StringFixed(2),
		Closing:      balance.Closing.StringFixed(2),
		GeneratedAt:  time.Now().Format("02.01.2006 15:04"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", nil, err
	}
	return rendered.String(), &musician, nil
}

// RenderStatementPDF prints the statement HTML to PDF through headless
// Chrome.
func RenderStatementPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

// UploadStatement stores a rendered statement PDF in Cloudinary and returns
// its URL.
func UploadStatement(pdfBytes []byte, musicianID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	uploadResult, err := cld.Upload.Upload(
		context.Background(),
		bytes.NewReader(pdfBytes),
		uploader.UploadParams{
			PublicID: fmt.Sprintf("bandkasse_statements/statement_%s_%d", musicianID, time.Now().Unix()),
		},
	)
	if err != nil {
		return "", err
	}
	return uploadResult.SecureURL, nil
}

// DispatchStatement renders, uploads, and emails a statement for the given
// range. Used by the export endpoint and the monthly cron job.
func DispatchStatement(musicianID uuid.UUID, from, to time.Time) error {
	htmlContent, musician, err := BuildStatement(musicianID, from, to)
	if err != nil {
		return err
	}

	pdfBytes, err := RenderStatementPDF(htmlContent)
	if err != nil {
		return err
	}

	uploadURL, err := UploadStatement(pdfBytes, musicianID.String())
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Dein Kontoauszug %s – %s", from.Format("02.01.2006"), to.Format("02.01.2006"))
	body := fmt.Sprintf(
		"<h1>Kontoauszug</h1><p>Hallo %s,</p><p>dein Kontoauszug für den Zeitraum %s bis %s steht bereit: <a href='%s'>Kontoauszug herunterladen</a>.</p>",
		musician.FullName, from.Format("02.01.2006"), to.Format("02.01.2006"), uploadURL,
	)
	notifications.SendEmail(musician.FullName, musician.Email, subject, body)

	log.Printf("✅ Dispatched statement for musician %s (%s – %s)", musicianID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	return nil
}
