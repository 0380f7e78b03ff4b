// Package api exposes the parsing pipeline over HTTP.
package api

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/statement-extractor/internal/analysis"
	"github.com/insightdelivered/statement-extractor/internal/extractor"
	"github.com/insightdelivered/statement-extractor/internal/models"
	"github.com/insightdelivered/statement-extractor/internal/parser"
	"github.com/insightdelivered/statement-extractor/internal/store"
	"github.com/insightdelivered/statement-extractor/internal/writer"
)

const pageBreakSeparator = "\n---PAGE_BREAK---\n"

// ConvertResponse is the JSON response from POST /api/convert.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Bank         string               `json:"bank,omitempty"`
	AccountInfo  *AccountInfo         `json:"accountInfo,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Stats        models.ParseStats    `json:"stats"`
	CSV          string               `json:"csv,omitempty"`
	TotalDebit   string               `json:"totalDebit"`
	TotalCredit  string               `json:"totalCredit"`
	Count        int                  `json:"count"`
	BatchID      string               `json:"batchId,omitempty"`
}

// AccountInfo holds account metadata for the JSON response.
type AccountInfo struct {
	Holder     string `json:"holder,omitempty"`
	Number     string `json:"number,omitempty"`
	IFSC       string `json:"ifsc,omitempty"`
	CustomerID string `json:"customerId,omitempty"`
	Period     string `json:"period,omitempty"`
}

// Handler wires the pipeline and its collaborators into HTTP routes.
type Handler struct {
	Store            store.Store
	Narrator         analysis.Narrator
	Log              *logrus.Entry
	StaticDir        string
	IncludeCSVHeader bool
}

// Register sets up the routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.health)
	app.Post("/api/convert", h.convert)
	app.Post("/api/narrate", h.narrate)
	app.Get("/api/transactions", h.transactions)

	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
	}
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) convert(c *fiber.Ctx) error {
	pages, err := h.inputPages(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	if len(pages) == 0 {
		return writeError(c, fiber.StatusBadRequest, "no input: upload a pdf as form field 'file' or provide 'extractedText'")
	}

	bankCode := c.FormValue("bank")
	if bankCode == "" {
		detected, err := parser.AutoDetect(pages)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "could not detect the statement variant; pass the 'bank' form field")
		}
		bankCode = string(detected)
	}

	p, err := parser.New(bankCode)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	st, err := p.Parse(pages)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	h.Log.WithFields(logrus.Fields{
		"bank":    st.Bank,
		"count":   len(st.Transactions),
		"dropped": st.Stats.RecordsDropped,
		"unknown": st.Stats.TransactionsUnknown,
	}).Info("statement converted")

	var csvBuf bytes.Buffer
	cw := &writer.CSVWriter{IncludeHeader: h.IncludeCSVHeader}
	if err := cw.Write(&csvBuf, st); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, txn := range st.Transactions {
		switch txn.Type {
		case models.Debit:
			totalDebit = totalDebit.Add(txn.Amount)
		case models.Credit:
			totalCredit = totalCredit.Add(txn.Amount)
		}
	}

	resp := ConvertResponse{
		Success:      true,
		Bank:         string(st.Bank),
		Transactions: st.Transactions,
		Stats:        st.Stats,
		CSV:          csvBuf.String(),
		TotalDebit:   totalDebit.StringFixed(2),
		TotalCredit:  totalCredit.StringFixed(2),
		Count:        len(st.Transactions),
	}
	if resp.Transactions == nil {
		resp.Transactions = []models.Transaction{}
	}
	if st.AccountHolder != "" || st.AccountNumber != "" || st.IFSC != "" || st.Period != "" {
		resp.AccountInfo = &AccountInfo{
			Holder:     st.AccountHolder,
			Number:     st.AccountNumber,
			IFSC:       st.IFSC,
			CustomerID: st.CustomerID,
			Period:     st.Period,
		}
	}

	if h.Store != nil && len(st.Transactions) > 0 {
		batchID, err := h.Store.SaveBatch(c.Context(), st.Bank, st.Transactions)
		if err != nil {
			h.Log.WithError(err).Warn("persisting batch failed")
		} else {
			resp.BatchID = batchID
		}
	}

	return c.JSON(resp)
}

// inputPages reads either client-side pre-extracted text or an uploaded PDF.
func (h *Handler) inputPages(c *fiber.Ctx) ([]string, error) {
	if text := c.FormValue("extractedText"); text != "" {
		var pages []string
		for _, page := range strings.Split(text, pageBreakSeparator) {
			if strings.TrimSpace(page) != "" {
				pages = append(pages, page)
			}
		}
		return pages, nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "only pdf uploads are supported")
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	if err := c.SaveFile(fh, tmp.Name()); err != nil {
		return nil, err
	}
	return extractor.ExtractText(tmp.Name())
}

func (h *Handler) narrate(c *fiber.Ctx) error {
	if h.Narrator == nil {
		return writeError(c, fiber.StatusServiceUnavailable, "narrative analysis is not configured")
	}
	categorized := c.FormValue("categorized")
	if strings.TrimSpace(categorized) == "" {
		return writeError(c, fiber.StatusBadRequest, "form field 'categorized' is required")
	}
	bank := c.FormValue("bank", "bank")

	narrative, err := h.Narrator.Narrate(c.Context(), bank, categorized)
	if err != nil {
		return writeError(c, fiber.StatusBadGateway, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "narrative": narrative})
}

func (h *Handler) transactions(c *fiber.Ctx) error {
	if h.Store == nil {
		return writeError(c, fiber.StatusServiceUnavailable, "persistence is not configured")
	}

	from := time.Time{}
	to := time.Now().Add(24 * time.Hour)
	var err error
	if q := c.Query("from"); q != "" {
		if from, err = time.Parse(time.RFC3339, q); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid 'from' timestamp, want RFC3339")
		}
	}
	if q := c.Query("to"); q != "" {
		if to, err = time.Parse(time.RFC3339, q); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid 'to' timestamp, want RFC3339")
		}
	}

	txns, err := h.Store.ListByPeriod(c.Context(), from, to)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return c.JSON(fiber.Map{"success": true, "transactions": txns, "count": len(txns)})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
		TotalDebit:   "0.00",
		TotalCredit:  "0.00",
	})
}
