package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	tracker "github.com/gwally9/investment-tracker"
)

// positionView is a valuation row on the wire. Derived fields are nullable:
// null means the price is unavailable, which is not the same as zero.
type positionView struct {
	ID            string           `json:"id"`
	Ticker        string           `json:"ticker"`
	Description   string           `json:"description"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	Fees          decimal.Decimal  `json:"fees"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	CurrentPrice  *decimal.Decimal `json:"current_price"`
	CurrentValue  *decimal.Decimal `json:"current_value"`
	Pl            *decimal.Decimal `json:"pl"`
	PlPercent     *float64         `json:"pl_percent"`
	IsLoss        bool             `json:"is_loss"`
	Stale         bool             `json:"stale"`
	DateAdded     time.Time        `json:"date_added"`
}

type summaryView struct {
	TotalCost    decimal.Decimal `json:"total_investment"`
	CurrentValue decimal.Decimal `json:"total_current_value"`
	Pl           decimal.Decimal `json:"total_pl"`
	PlPercent    *float64        `json:"total_pl_percent"`
	IsLoss       bool            `json:"is_loss"`
	Excluded     int             `json:"excluded"`
}

type portfolioResponse struct {
	Success   bool           `json:"success"`
	Portfolio []positionView `json:"portfolio"`
	Summary   summaryView    `json:"summary"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// positionRequest is the payload of add and edit.
type positionRequest struct {
	Ticker        string          `json:"ticker"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Fees          decimal.Decimal `json:"fees"`
}

func (a *App) getPortfolio(w http.ResponseWriter, r *http.Request) {
	results, summary := a.engine.Value(r.Context(), a.store.Positions())
	writeJSON(w, http.StatusOK, portfolioResponse{
		Success:   true,
		Portfolio: views(results),
		Summary:   summarize(summary),
	})
}

func (a *App) addPosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, fmt.Sprintf("cannot parse request: %v", err))
		return
	}

	p, err := tracker.NewPosition(req.Ticker, req.Description,
		tracker.Q(req.Quantity), tracker.M(req.PurchasePrice, a.cfg.Currency), tracker.M(req.Fees, a.cfg.Currency))
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.store.Add(p); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if !a.save(w) {
		return
	}
	writeJSON(w, http.StatusCreated, statusResponse{Success: true, Message: "Position added successfully", ID: p.ID})
}

func (a *App) editPosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, fmt.Sprintf("cannot parse request: %v", err))
		return
	}

	current, ok := a.store.Get(id)
	if !ok {
		fail(w, http.StatusNotFound, "Position not found")
		return
	}
	if req.Ticker != "" && tracker.NormalizeTicker(req.Ticker) != current.Ticker {
		fail(w, http.StatusBadRequest, "ticker is immutable: delete the position and add a new one")
		return
	}

	_, err := a.store.Edit(id, req.Description,
		tracker.Q(req.Quantity), tracker.M(req.PurchasePrice, a.cfg.Currency), tracker.M(req.Fees, a.cfg.Currency))
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		fail(w, http.StatusNotFound, "Position not found")
		return
	case err != nil:
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if !a.save(w) {
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Position updated successfully"})
}

func (a *App) deletePosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.store.Delete(id); err != nil {
		fail(w, http.StatusNotFound, "Position not found")
		return
	}
	if !a.save(w) {
		return
	}
	// drop quotes nothing references anymore; an in-flight fetch for a
	// pruned ticker is abandoned
	a.cache.Prune(a.store.Tickers())
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Position deleted successfully"})
}

func (a *App) refreshPrices(w http.ResponseWriter, r *http.Request) {
	a.cache.Clear()
	// re-warm in the background so the interface stays responsive
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := a.cache.RefreshAll(ctx, a.store.Tickers()); err != nil {
			logger.WithError(err).Warn("refresh left tickers unavailable")
		}
	}()
	writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: "Price refresh started"})
}

func (a *App) exportCSV(w http.ResponseWriter, r *http.Request) {
	results, summary := a.engine.Value(r.Context(), a.store.Positions())

	filename := fmt.Sprintf("portfolio_export_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := tracker.ExportCSV(w, results, summary); err != nil {
		logger.WithError(err).Error("csv export failed")
	}
}

// save persists the store and reports the failure to the client. Persistence
// failures are fatal for the operation: the user is told to retry rather
// than having the edit silently dropped.
func (a *App) save(w http.ResponseWriter) bool {
	if err := a.store.Save(a.cfg.DataFile); err != nil {
		logger.WithError(err).Error("cannot save position file")
		fail(w, http.StatusInternalServerError, fmt.Sprintf("could not save your change, please retry: %v", err))
		return false
	}
	return true
}

func views(results []tracker.ValuationResult) []positionView {
	out := make([]positionView, 0, len(results))
	for _, r := range results {
		p := r.Position
		v := positionView{
			ID:            p.ID,
			Ticker:        p.Ticker,
			Description:   p.Description,
			Quantity:      p.Quantity.Decimal(),
			PurchasePrice: p.PurchasePrice.Amount(),
			Fees:          p.Fees.Amount(),
			TotalCost:     p.TotalCost().Amount(),
			IsLoss:        r.IsLoss,
			Stale:         r.Stale,
			DateAdded:     p.Added,
		}
		if r.Priced {
			v.CurrentPrice = dec(r.CurrentPrice.Amount())
			v.CurrentValue = dec(r.MarketValue.Amount())
			v.Pl = dec(r.GainLoss.Amount())
			if r.PctValid {
				v.PlPercent = pct(r.GainLossPct)
			}
		}
		out = append(out, v)
	}
	return out
}

func summarize(s tracker.Summary) summaryView {
	v := summaryView{
		TotalCost:    s.TotalCost.Amount(),
		CurrentValue: s.TotalMarketValue.Amount(),
		Pl:           s.GainLoss.Amount(),
		IsLoss:       s.IsLoss,
		Excluded:     s.Excluded,
	}
	if s.PctValid {
		v.PlPercent = pct(s.GainLossPct)
	}
	return v
}

func dec(d decimal.Decimal) *decimal.Decimal { return &d }
func pct(p tracker.Percent) *float64         { f := float64(p); return &f }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("cannot encode response")
	}
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, statusResponse{Success: false, Message: message})
}
