package transport

import (
	"net/http"

	"studentmart-be/internal/message"

	"github.com/gin-gonic/gin"
)

// listRecipients exposes the staff accounts a buyer can start a
// conversation with.
func (h *Handler) listRecipients(c *gin.Context) {
	admins, err := h.users.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipients": admins})
}

func (h *Handler) listConversations(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	conversations, err := h.messages.ListConversations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (h *Handler) getConversationMessages(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	msgs, err := h.messages.GetMessages(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) sendMessage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input message.SendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message payload"})
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
