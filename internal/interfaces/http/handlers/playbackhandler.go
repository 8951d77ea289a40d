package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"coursegate/internal/application/playback/usecases"
	"coursegate/internal/shared/constants"
	"coursegate/internal/shared/logger"
	"coursegate/internal/shared/utils"
)

type PlaybackHandler struct {
	issueTokenUC *usecases.IssuePlaybackTokenUseCase
	logger       logger.Interface
}

func NewPlaybackHandler(issueTokenUC *usecases.IssuePlaybackTokenUseCase) *PlaybackHandler {
	return &PlaybackHandler{
		issueTokenUC: issueTokenUC,
		logger:       logger.NewLogger(),
	}
}

type IssuePlaybackTokenRequest struct {
	AssetID   string `json:"asset_id" validate:"required,max=255"`
	AccessTag string `json:"access_tag" validate:"required,max=128"`
}

type PlaybackTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken runs the access decision for the requested asset and returns a
// short-lived signed playback token when the caller is entitled. Anonymous
// callers can only reach free content.
func (h *PlaybackHandler) IssueToken(c *gin.Context) {
	var req IssuePlaybackTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := utils.ValidateAccessTag(req.AccessTag); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.issueTokenUC.Execute(c.Request.Context(), usecases.IssuePlaybackTokenCommand{
		UserID:    c.GetString(constants.ContextKeyUserID),
		AssetID:   req.AssetID,
		AccessTag: req.AccessTag,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "playback token issued", PlaybackTokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}
