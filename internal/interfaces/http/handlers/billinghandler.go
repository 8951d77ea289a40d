package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursegate/internal/application/billing/usecases"
	"coursegate/internal/shared/constants"
	"coursegate/internal/shared/logger"
	"coursegate/internal/shared/utils"
)

type BillingHandler struct {
	createCheckoutUC *usecases.CreateCheckoutSessionUseCase
	createPortalUC   *usecases.CreatePortalSessionUseCase
	logger           logger.Interface
}

func NewBillingHandler(
	createCheckoutUC *usecases.CreateCheckoutSessionUseCase,
	createPortalUC *usecases.CreatePortalSessionUseCase,
) *BillingHandler {
	return &BillingHandler{
		createCheckoutUC: createCheckoutUC,
		createPortalUC:   createPortalUC,
		logger:           logger.NewLogger(),
	}
}

type CreateCheckoutRequest struct {
	EntitlementSlug string `json:"entitlement_slug" validate:"required,max=128"`
}

type CheckoutSessionResponse struct {
	URL string `json:"url"`
}

// CreateCheckoutSession starts a provider-hosted checkout for the
// authenticated user.
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createCheckoutUC.Execute(c.Request.Context(), usecases.CreateCheckoutSessionCommand{
		UserID:          c.GetString(constants.ContextKeyUserID),
		Email:           c.GetString(constants.ContextKeyUserEmail),
		EntitlementSlug: req.EntitlementSlug,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "checkout session created", CheckoutSessionResponse{URL: result.URL})
}

// CreatePortalSession opens the self-service billing portal for a user with
// an existing billing account.
func (h *BillingHandler) CreatePortalSession(c *gin.Context) {
	result, err := h.createPortalUC.Execute(c.Request.Context(), usecases.CreatePortalSessionCommand{
		UserID: c.GetString(constants.ContextKeyUserID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "portal session created", CheckoutSessionResponse{URL: result.URL})
}
