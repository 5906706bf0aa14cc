package api

import (
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/payment"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookings booking.BookingUseCase
	payments payment.PaymentUseCase
}

type createBookingRequest struct {
	FlightID       string `json:"flight_id" binding:"required"`
	PassengerName  string `json:"passenger_name" binding:"required"`
	PassengerEmail string `json:"passenger_email" binding:"required"`
}

type paymentRequest struct {
	UserID        string `json:"user_id" binding:"required"`
	FlightID      string `json:"flight_id" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	Amount        string `json:"amount"`
}

func NewBookingHandler(bookings booking.BookingUseCase, payments payment.PaymentUseCase) *BookingHandler {
	return &BookingHandler{bookings: bookings, payments: payments}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/book", h.book)
	router.POST("/pay", h.pay)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.bookings.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:       req.FlightID,
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
	})
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) pay(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.payments.ProcessPayment(c.Request.Context(), payment.PaymentInput{
		UserID:        req.UserID,
		FlightID:      req.FlightID,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotApplicable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrPaymentNotApplicable.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
