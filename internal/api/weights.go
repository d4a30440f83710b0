package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/weightservice"
)

// GetWeights handles GET /api/weights.
//
//	@Summary		Get the weight log; data is null when none exists
//	@Tags			weights
//	@Produce		json
//	@Success		200	{object}	envelope{data=models.Weight}
//	@Security		BearerAuth
//	@Router			/weights [get]
func (h *Handler) GetWeights(w http.ResponseWriter, r *http.Request) {
	wt, err := h.weights.Get(r.Context(), identity(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if wt == nil {
		ok(w, http.StatusOK, nil)
		return
	}
	ok(w, http.StatusOK, wt)
}

// UpsertWeights handles POST /api/weights.
//
//	@Summary		Create the weight log or update its profile; records, when sent, replace the stored ones
//	@Tags			weights
//	@Accept			json
//	@Produce		json
//	@Param			body	body		WeightRequest	true	"Profile and optional records"
//	@Success		200		{object}	envelope{data=models.Weight}
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/weights [post]
func (h *Handler) UpsertWeights(w http.ResponseWriter, r *http.Request) {
	var req WeightRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	var in *weightservice.ProfileInput
	if p := req.Profile; p != nil {
		in = &weightservice.ProfileInput{
			Height: p.Height,
			Weight: p.Weight,
			Age:    p.Age,
			Gender: p.Gender,
		}
		if p.StartDate != nil {
			t, valid := parseTime(*p.StartDate)
			if !valid {
				writeError(w, r, apperr.BadRequest("invalid startDate"))
				return
			}
			in.StartDate = &t
		}
		if req.Records != nil {
			records := make([]weightservice.RecordInput, 0, len(*req.Records))
			for _, rr := range *req.Records {
				rec, err := recordInput(rr)
				if err != nil {
					writeError(w, r, err)
					return
				}
				records = append(records, rec)
			}
			in.Records = &records
		}
	}
	wt, err := h.weights.UpsertProfile(r.Context(), identity(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, wt)
}

// ResetWeights handles DELETE /api/weights.
//
//	@Summary		Delete the whole weight log
//	@Tags			weights
//	@Produce		json
//	@Success		200	{object}	envelope
//	@Security		BearerAuth
//	@Router			/weights [delete]
func (h *Handler) ResetWeights(w http.ResponseWriter, r *http.Request) {
	if err := h.weights.Reset(r.Context(), identity(r).ID); err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, struct{}{})
}

// AddWeightRecord handles POST /api/weights/record.
//
//	@Summary		Log a measurement; same calendar day overwrites
//	@Tags			weights
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RecordRequest	true	"Measurement"
//	@Success		200		{object}	envelope{data=models.Weight}
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/weights/record [post]
func (h *Handler) AddWeightRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	in, err := recordInput(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	wt, err := h.weights.AddRecord(r.Context(), identity(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, wt)
}

// DeleteWeightRecord handles DELETE /api/weights/record/{id}.
//
//	@Summary		Delete one measurement
//	@Tags			weights
//	@Produce		json
//	@Param			id	path		string	true	"Record id"
//	@Success		200	{object}	envelope{data=models.Weight}
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/weights/record/{id} [delete]
func (h *Handler) DeleteWeightRecord(w http.ResponseWriter, r *http.Request) {
	wt, err := h.weights.DeleteRecord(r.Context(), identity(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, http.StatusOK, wt)
}

func recordInput(req RecordRequest) (weightservice.RecordInput, error) {
	in := weightservice.RecordInput{Weight: req.Weight, Note: req.Note}
	if req.Date != nil {
		t, valid := parseTime(*req.Date)
		if !valid {
			return in, apperr.BadRequest("invalid date")
		}
		in.Date = &t
	}
	return in, nil
}
