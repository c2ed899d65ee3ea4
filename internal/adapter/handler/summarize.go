package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meeting-minute/backend/errors"
	"github.com/meeting-minute/backend/internal/adapter/dto"
	"github.com/meeting-minute/backend/internal/usecase/summarize"
)

// SummarizeController handles the meeting pipeline endpoints
type SummarizeController struct {
	svc    summarize.Service
	logger *zap.Logger
}

// NewSummarizeController creates a new summarize controller
func NewSummarizeController(svc summarize.Service, logger *zap.Logger) *SummarizeController {
	return &SummarizeController{svc: svc, logger: logger}
}

// Summarize runs the full meeting pipeline
// @Summary      Summarize a meeting recording
// @Description  Transcribes the uploaded audio, summarizes it, and generates action items per participant
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Param        meeting  formData  string  true  "Meeting metadata JSON: {team_name, users:[{name,email}]}"
// @Param        file     formData  file    true  "Meeting audio recording"
// @Success      200      {object}  dto.SummarizeResponse
// @Failure      400      {object}  map[string]string  "Invalid JSON format"
// @Failure      500      {object}  map[string]string  "Authentication or pipeline failure"
// @Router       /api/summarize [post]
func (sc *SummarizeController) Summarize(c echo.Context) error {
	metadata, audio, filename, err := sc.parseMeetingForm(c)
	if err != nil {
		return HandleError(sc.logger, c, err)
	}

	result, err := sc.svc.ProcessMeeting(c.Request().Context(), metadata.ToMeetingRequest(), audio, filename)
	if err != nil {
		return HandleError(sc.logger, c, err)
	}

	if sc.logger != nil {
		sc.logger.Info("meeting summarized",
			zap.String("request_id", getRequestID(c)),
			zap.String("team", metadata.TeamName),
			zap.Int("action_items", len(result.ActionItems)),
		)
	}
	return c.JSON(http.StatusOK, dto.NewSummarizeResponse(result))
}

// DraftEmails generates per-participant follow-up emails
// @Summary      Draft follow-up emails for a meeting recording
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Param        meeting  formData  string  true  "Meeting metadata JSON: {team_name, users:[{name,email}]}"
// @Param        file     formData  file    true  "Meeting audio recording"
// @Success      200      {object}  dto.EmailsResponse
// @Failure      400      {object}  map[string]string  "Invalid JSON format"
// @Failure      500      {object}  map[string]string  "Authentication or pipeline failure"
// @Router       /api/emails [post]
func (sc *SummarizeController) DraftEmails(c echo.Context) error {
	metadata, audio, filename, err := sc.parseMeetingForm(c)
	if err != nil {
		return HandleError(sc.logger, c, err)
	}

	emails, err := sc.svc.DraftEmails(c.Request().Context(), metadata.ToMeetingRequest(), audio, filename)
	if err != nil {
		return HandleError(sc.logger, c, err)
	}
	return c.JSON(http.StatusOK, dto.NewEmailsResponse(emails))
}

// parseMeetingForm extracts and validates the multipart input. Malformed
// metadata JSON fails here, before any provider is contacted.
func (sc *SummarizeController) parseMeetingForm(c echo.Context) (dto.MeetingMetadata, []byte, string, error) {
	var metadata dto.MeetingMetadata
	if err := json.Unmarshal([]byte(c.FormValue("meeting")), &metadata); err != nil {
		return metadata, nil, "", errors.ErrInvalidJSON(err)
	}
	if err := c.Validate(&metadata); err != nil {
		return metadata, nil, "", errors.ErrInvalidArgument(err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return metadata, nil, "", errors.ErrMissingAudioFile()
	}

	src, err := fileHeader.Open()
	if err != nil {
		return metadata, nil, "", errors.ErrInternal(err)
	}
	defer src.Close()

	// Content type is not validated; the speech provider decides what it
	// accepts.
	audio, err := io.ReadAll(src)
	if err != nil {
		return metadata, nil, "", errors.ErrInternal(err)
	}

	return metadata, audio, fileHeader.Filename, nil
}
