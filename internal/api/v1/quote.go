package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novastream/novastream/internal/api/dto"
	"github.com/novastream/novastream/internal/domain/quote"
	ierr "github.com/novastream/novastream/internal/errors"
	"github.com/novastream/novastream/internal/logger"
	"github.com/novastream/novastream/internal/service"
	"github.com/novastream/novastream/internal/types"
)

type QuoteHandler struct {
	tvService        service.TvQuoteService
	streamingService service.StreamingQuoteService
	orderService     service.OrderService
	currency         string
	logger           *logger.Logger
}

func NewQuoteHandler(
	tvService service.TvQuoteService,
	streamingService service.StreamingQuoteService,
	orderService service.OrderService,
	currency string,
	logger *logger.Logger,
) *QuoteHandler {
	return &QuoteHandler{
		tvService:        tvService,
		streamingService: streamingService,
		orderService:     orderService,
		currency:         currency,
		logger:           logger,
	}
}

// ComputeTvQuote prices one TV subscription configuration
func (h *QuoteHandler) ComputeTvQuote(c *gin.Context) {
	var req dto.TvQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	q, err := h.tvService.Compute(req.ToInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q, h.currency))
}

// ComputeStreamingQuote prices one Streaming Hub configuration
func (h *QuoteHandler) ComputeStreamingQuote(c *gin.Context) {
	var req dto.StreamingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	q, err := h.streamingService.Compute(req.ToInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q, h.currency))
}

// ComputeOrderQuote prices a whole order and returns the merged quote with
// its analytics metadata
func (h *QuoteHandler) ComputeOrderQuote(c *gin.Context) {
	var req dto.OrderQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	var tvInput *quote.TvInput
	if req.Tv != nil {
		input := req.Tv.ToInput()
		tvInput = &input
	}
	var streamingInput *quote.StreamingInput
	if req.Streaming != nil {
		input := req.Streaming.ToInput()
		streamingInput = &input
	}

	merged, metadata, err := h.orderService.ComputeOrder(tvInput, streamingInput, req.CouponCode, types.AcquisitionChannel(req.Channel))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderQuoteResponse{
		QuoteResponse: dto.NewQuoteResponse(merged, h.currency),
		Metadata:      metadata,
	})
}
