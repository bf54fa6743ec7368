package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Neumenon/chiffre/internal/pkg/errcode"
	"github.com/Neumenon/chiffre/internal/pkg/response"
	"github.com/Neumenon/chiffre/internal/resolve"
)

const maxBatchTexts = 1000

type ResolveHandler struct {
	resolver *resolve.Resolver
}

func NewResolveHandler(resolver *resolve.Resolver) *ResolveHandler {
	return &ResolveHandler{resolver: resolver}
}

type textRequest struct {
	Text string `json:"text"`
}

type numeralResponse struct {
	Text      string   `json:"text"`
	Value     string   `json:"value"`
	Canonical string   `json:"canonical"`
	Warnings  []string `json:"warnings,omitempty"`
}

type durationResponse struct {
	Text        string   `json:"text"`
	Nanoseconds int64    `json:"nanoseconds"`
	Seconds     float64  `json:"seconds"`
	Duration    string   `json:"duration"`
	Canonical   string   `json:"canonical"`
	Shape       string   `json:"shape"`
	Warnings    []string `json:"warnings,omitempty"`
}

type batchRequest struct {
	Kind  string   `json:"kind"`
	Texts []string `json:"texts"`
}

type batchItem struct {
	Text      string `json:"text"`
	Value     string `json:"value,omitempty"`
	Canonical string `json:"canonical,omitempty"`
	Code      int    `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *ResolveHandler) Numeral(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		response.Error(c, errcode.ErrInvalid, "text required")
		return
	}
	v, err := h.resolver.Resolve(c.Request.Context(), resolve.KindNumeral, req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, numeralResponse{
		Text:      req.Text,
		Value:     v.Number.String(),
		Canonical: v.Canonical,
		Warnings:  warningMessages(v.Warnings),
	})
}

func (h *ResolveHandler) Duration(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		response.Error(c, errcode.ErrInvalid, "text required")
		return
	}
	v, err := h.resolver.Resolve(c.Request.Context(), resolve.KindDuration, req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, durationResponse{
		Text:        req.Text,
		Nanoseconds: int64(v.Duration),
		Seconds:     v.Duration.Seconds(),
		Duration:    v.Duration.String(),
		Canonical:   v.Canonical,
		Shape:       v.Shape.String(),
		Warnings:    warningMessages(v.Warnings),
	})
}

func (h *ResolveHandler) Batch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	kind, err := resolve.ParseKind(req.Kind)
	if err != nil {
		response.Error(c, errcode.ErrInvalid, err.Error())
		return
	}
	if len(req.Texts) > maxBatchTexts {
		response.Error(c, errcode.ErrInvalid, "too many texts")
		return
	}

	results, err := h.resolver.Batch(c.Request.Context(), kind, req.Texts)
	if err != nil {
		handleError(c, err)
		return
	}
	items := make([]batchItem, 0, len(results))
	for _, res := range results {
		item := batchItem{Text: res.Text}
		switch {
		case res.Err != nil:
			item.Code = errorCode(res.Err)
			item.Error = res.Err.Error()
		case kind == resolve.KindNumeral:
			item.Value = res.Value.Number.String()
			item.Canonical = res.Value.Canonical
		default:
			item.Value = res.Value.Duration.String()
			item.Canonical = res.Value.Canonical
		}
		items = append(items, item)
	}
	response.Success(c, gin.H{"kind": kind, "items": items})
}

func (h *ResolveHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"ok": true})
}
