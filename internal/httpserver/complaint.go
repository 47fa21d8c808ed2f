package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_complaints/internal/models"
	"github.com/Skotchmaster/campus_complaints/internal/service"
	"github.com/Skotchmaster/campus_complaints/internal/storage"
	"github.com/Skotchmaster/campus_complaints/internal/transport"
	"github.com/Skotchmaster/campus_complaints/internal/util"
	"github.com/Skotchmaster/campus_complaints/pkg/logging"
)

type ComplaintHTTP struct {
	Svc *service.ComplaintService
}

func (h *ComplaintHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "complaint.submit")

	var req transport.SubmitComplaintRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("submit_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	in := service.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("photo")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			l.Warn("submit_error", "status", 400, "reason", "bad photo part", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid photo upload")
		default:
			f, err := fh.Open()
			if err != nil {
				l.Error("submit_error", "status", 500, "reason", "cannot open photo", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "Error creating complaint")
			}
			defer f.Close()
			in.Photo = &storage.Photo{
				Name:        fh.Filename,
				ContentType: fh.Header.Get(echo.HeaderContentType),
				Size:        fh.Size,
				Body:        f,
			}
		}
	}

	complaint, err := h.Svc.Submit(ctx, claimsFrom(c), in)
	if err != nil {
		return fail(l, "submit_error", err)
	}

	return c.JSON(http.StatusCreated, transport.ComplaintResponse{
		Success:   true,
		Message:   "Complaint submitted successfully",
		Complaint: complaint,
	})
}

func (h *ComplaintHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "complaint.list_mine")

	items, err := h.Svc.ListMine(ctx, claimsFrom(c))
	if err != nil {
		return fail(l, "list_mine_error", err)
	}
	return c.JSON(http.StatusOK, listResponse(items))
}

func (h *ComplaintHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "complaint.list_all")

	items, err := h.Svc.ListAll(ctx, claimsFrom(c))
	if err != nil {
		return fail(l, "list_all_error", err)
	}
	l.Info("list_all_success", "count", len(items))
	return c.JSON(http.StatusOK, listResponse(items))
}

func (h *ComplaintHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "complaint.get")

	complaint, err := h.Svc.Get(ctx, claimsFrom(c), c.Param("id"))
	if err != nil {
		return fail(l, "get_error", err)
	}
	return c.JSON(http.StatusOK, transport.ComplaintResponse{Success: true, Complaint: complaint})
}

func (h *ComplaintHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "complaint.update")

	var req transport.UpdateComplaintRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	complaint, err := h.Svc.Update(ctx, claimsFrom(c), c.Param("id"), service.UpdateInput{
		Status:   req.Status,
		Priority: req.Priority,
		Remarks:  req.Remarks,
	})
	if err != nil {
		return fail(l, "update_error", err)
	}

	return c.JSON(http.StatusOK, transport.ComplaintResponse{
		Success:   true,
		Message:   "Complaint updated successfully",
		Complaint: complaint,
	})
}

func (h *ComplaintHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "complaint.delete")

	if err := h.Svc.Delete(ctx, claimsFrom(c), c.Param("id")); err != nil {
		return fail(l, "delete_error", err)
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Success: true, Message: "Complaint deleted successfully"})
}

func (h *ComplaintHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "complaint.stats")

	st, err := h.Svc.Stats(ctx, claimsFrom(c))
	if err != nil {
		return fail(l, "stats_error", err)
	}
	return c.JSON(http.StatusOK, transport.StatsResponse{
		Success: true,
		Stats: transport.StatsBody{
			Total:      st.Total,
			Pending:    st.Pending,
			InProgress: st.InProgress,
			Completed:  st.Completed,
		},
	})
}

func (h *ComplaintHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "complaint.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}

	res, err := h.Svc.Search(ctx, claimsFrom(c), c.QueryParam("q"), from, limit)
	if err != nil {
		return fail(l, "search_error", err)
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{
		Success:    true,
		Total:      res.Total,
		Page:       page,
		Size:       limit,
		Complaints: res.Items,
	})
}

func listResponse(items []models.Complaint) transport.ComplaintsResponse {
	if items == nil {
		items = []models.Complaint{}
	}
	return transport.ComplaintsResponse{Success: true, Count: len(items), Complaints: items}
}
