package handlers

import (
	"net/http"

	"servicedesk/db"
	"servicedesk/models"
)

// CreateCommentHandler обрабатывает POST /comment
func (h *Handler) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	var in models.CommentInput
	if !h.decodeBody(w, r, &in) {
		return
	}

	c := db.Comment{User: *in.User, Comment: *in.Comment, ServiceRequestID: *in.ServiceRequestID}
	if err := h.Store.CreateComment(r.Context(), &c); err != nil {
		h.serverError(w, r, "Failed to create comment", err)
		return
	}
	writeMessage(w, "comment with id: %d has been created successfully.", c.ID)
}

func (h *Handler) ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	comments, err := h.Store.ListComments(r.Context())
	if err != nil {
		h.serverError(w, r, "Failed to get comments", err)
		return
	}

	results := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		results = append(results, commentRecord(c))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(results),
		"comments": results,
		"message":  "success",
	})
}

func (h *Handler) GetCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "comment")
	if !ok {
		return
	}
	c, err := h.Store.GetComment(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "comment", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "success",
		"comment": commentRecord(*c),
	})
}

// UpdateCommentHandler меняет автора, текст и заявку; created_date не принимается
func (h *Handler) UpdateCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "comment")
	if !ok {
		return
	}
	c, err := h.Store.GetComment(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "comment", err)
		return
	}

	var in models.CommentInput
	if !h.decodeBody(w, r, &in) {
		return
	}
	c.User = *in.User
	c.Comment = *in.Comment
	c.ServiceRequestID = *in.ServiceRequestID

	if err := h.Store.UpdateComment(r.Context(), c); err != nil {
		h.storeError(w, r, "comment", err)
		return
	}
	writeMessage(w, "comment id: %d successfully updated", c.ID)
}

func (h *Handler) DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "comment")
	if !ok {
		return
	}
	if _, err := h.Store.GetComment(r.Context(), id); err != nil {
		h.storeError(w, r, "comment", err)
		return
	}
	if err := h.Store.DeleteComment(r.Context(), id); err != nil {
		h.storeError(w, r, "comment", err)
		return
	}
	writeMessage(w, "comment id: %d successfully deleted.", id)
}
