package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "social-verifier-backend/internal/common/errors"
	"social-verifier-backend/internal/common/logger"
	"social-verifier-backend/internal/features/verify/models"
	"social-verifier-backend/internal/features/verify/service"
)

type Handler struct {
	service *service.Service
}

func NewHandler(service *service.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/twitter-verify", h.VerifyTwitter)
	router.GET("/v2/twitter-verify", h.VerifyTwitterV2)
	router.GET("/solana/twitter-verify", h.VerifyTwitterSolana)
	router.GET("/github-verify", h.VerifyGithub)
}

// @Summary Verify a Twitter handle
// @Description Recovers the EIP-712 signature embedded in the handle's recent tweets and binds the handle to the claimed address
// @Tags verify
// @Produce json
// @Param handle query string true "Twitter handle"
// @Param addr query string true "Claimed EVM address"
// @Success 200 {object} models.TwitterVerifyResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /twitter-verify [get]
func (h *Handler) VerifyTwitter(c *gin.Context) {
	h.verifyTwitterKind(c, models.KindTwitterEcdsa)
}

// @Summary Verify a Twitter handle (handle-bound message)
// @Description Same flow as /twitter-verify but the signed message interpolates the handle
// @Tags verify
// @Produce json
// @Param handle query string true "Twitter handle"
// @Param addr query string true "Claimed EVM address"
// @Success 200 {object} models.TwitterVerifyResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /v2/twitter-verify [get]
func (h *Handler) VerifyTwitterV2(c *gin.Context) {
	h.verifyTwitterKind(c, models.KindTwitterEcdsaV2)
}

// @Summary Verify a Twitter handle against a Solana address
// @Description Checks the detached ed25519 signature embedded in the handle's recent tweets; the claimed address is the base58 public key
// @Tags verify
// @Produce json
// @Param handle query string true "Twitter handle"
// @Param addr query string true "Claimed Solana address"
// @Success 200 {object} models.TwitterVerifyResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /solana/twitter-verify [get]
func (h *Handler) VerifyTwitterSolana(c *gin.Context) {
	h.verifyTwitterKind(c, models.KindTwitterSolana)
}

// @Summary Verify a GitHub account via gist
// @Description Recovers the EIP-712 signature embedded in the gist and binds the gist owner to the claimed address
// @Tags verify
// @Produce json
// @Param gist_id query string true "Gist id"
// @Param addr query string true "Claimed EVM address"
// @Success 200 {object} models.GithubVerifyResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /github-verify [get]
func (h *Handler) VerifyGithub(c *gin.Context) {
	req := models.ProofRequest{
		Kind:    models.KindGithubEcdsa,
		Address: strings.TrimSpace(c.Query("addr")),
		GistID:  strings.TrimSpace(c.Query("gist_id")),
	}

	verification, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GithubVerifyResponse{Username: verification.Owner})
}

func (h *Handler) verifyTwitterKind(c *gin.Context, kind models.VerificationKind) {
	req := models.ProofRequest{
		Kind:    kind,
		Address: strings.TrimSpace(c.Query("addr")),
		Handle:  strings.TrimSpace(c.Query("handle")),
	}

	verification, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TwitterVerifyResponse{Handle: verification.Owner})
}

// respondError flattens every failure to 400 with a human-readable errorText.
// Existing clients depend on that shape, so finer status codes stay out.
func respondError(c *gin.Context, err error) {
	text := "verification failed"
	if appErr, ok := apperrors.AsAppError(err); ok {
		text = appErr.Message
	} else {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unmapped verification error")
	}

	logger.Info().
		Str("path", c.Request.URL.Path).
		Str("code", string(apperrors.CodeOf(err))).
		Msg("verification rejected")

	c.JSON(http.StatusBadRequest, models.ErrorResponse{ErrorText: text})
}
