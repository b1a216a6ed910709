package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	billdomain "github.com/ormgarage/facturation/internal/bill/domain"
	clientdomain "github.com/ormgarage/facturation/internal/client/domain"
	"github.com/ormgarage/facturation/internal/providers/pdf"
	"github.com/shopspring/decimal"
)

type billItemRequest struct {
	Name      string           `json:"name"`
	Quantity  *int64           `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type createBillRequest struct {
	ClientID    *int64            `json:"client_id"`
	ClientName  string            `json:"client_name"`
	ClientPhone string            `json:"client_phone"`
	Date        *time.Time        `json:"date"`
	Items       []billItemRequest `json:"items"`
}

type updateBillRequest struct {
	Date  *time.Time        `json:"date"`
	Items []billItemRequest `json:"items"`
}

type setPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

func (s *Server) GetBillsByClient(c *gin.Context) {
	clientID, err := parseID(c.Param("clientId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	bills, err := s.billSvc.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bills)
}

func (s *Server) GetBill(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	bill, err := s.billSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

func (s *Server) CreateBill(c *gin.Context) {
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	bill, err := s.billSvc.Create(c.Request.Context(), billdomain.CreateBillRequest{
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Date:        req.Date,
		Items:       toItemInputs(req.Items),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

func (s *Server) UpdateBill(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	bill, err := s.billSvc.Update(c.Request.Context(), id, billdomain.UpdateBillRequest{
		Date:  req.Date,
		Items: toItemInputs(req.Items),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

func (s *Server) SetBillPaid(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req setPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	bill, err := s.billSvc.SetPaid(c.Request.Context(), id, *req.Paid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

func (s *Server) DeleteBill(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.billSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}

func (s *Server) GetBillPDF(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	bill, err := s.billSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if bill.Client == nil {
		AbortWithError(c, clientdomain.ErrNotFound)
		return
	}

	reader, err := s.invoices.GenerateInvoice(c.Request.Context(), pdf.InvoiceDataFromAggregate(bill))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	document, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=facture-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", document)
}

func toItemInputs(items []billItemRequest) []billdomain.ItemInput {
	out := make([]billdomain.ItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, billdomain.ItemInput{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return out
}
