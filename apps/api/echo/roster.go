package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core"
	"github.com/JaMeS-18-18/ForPluto/core/report"
	"github.com/JaMeS-18-18/ForPluto/core/roster"
)

var nowFunc = time.Now // mockable

type (
	rosterApi struct {
		svc      *roster.Service
		shareSvc core.ShareService
		share    core.ShareConfig
		export   core.ExportConfig
	}

	SelectionRequest struct {
		ID int64 `json:"id" validate:"required"`
	}

	SelectionResponse struct {
		ID       int64 `json:"id"`
		Selected bool  `json:"selected"`
	}

	InsertStudentRequest struct {
		Index *int `json:"index" validate:"required"`
	}

	// FieldValueRequest carries a boolean, a string or a list of strings, checked against the field kind.
	FieldValueRequest struct {
		Value json.RawMessage `json:"value" validate:"required"`
	}

	TextRequest struct {
		Text string `json:"text"`
	}

	ToggleResponse struct {
		Value bool `json:"value"`
	}

	NoteResponse struct {
		Index int `json:"index"`
	}

	ShareResponse struct {
		URL string `json:"url"`
	}
)

func registerRosterAPI(g *echo.Group, opts *Options) {
	api := rosterApi{
		svc:      opts.RosterSvc,
		shareSvc: opts.ShareSvc,
		share:    opts.Share,
		export:   opts.Export,
	}

	g.GET("/groups", api.query)
	g.POST("/groups", api.createGroup)

	g.GET("/selection", api.selection)
	g.PUT("/selection", api.selectGroup)
	g.DELETE("/selection", api.clearSelection)

	// detail endpoints; route-level middlewares only, so both kinds can share the prefix
	load := groupMiddleware(api.svc, false)
	sel := groupMiddleware(api.svc, true)
	dg := g.Group("/groups/:id")

	dg.GET("", api.retrieve, load)
	dg.DELETE("", api.destroy, load)
	dg.GET("/report/text", api.textReport, load)
	dg.GET("/report/document", api.documentReport, load)
	dg.POST("/share", api.shareGroup, load)

	dg.POST("/students", api.addStudent, sel)
	dg.POST("/students/insert", api.insertStudent, sel)
	dg.DELETE("/students/:sid", api.removeStudent, sel)
	dg.PUT("/students/:sid/fields/:field", api.updateField, sel)
	dg.POST("/students/:sid/fields/:field/toggle", api.toggleField, sel)
	dg.POST("/students/:sid/notes/:field", api.addNote, sel)
	dg.PUT("/students/:sid/notes/:field/:index", api.updateNote, sel)
	dg.DELETE("/students/:sid/notes/:field/:index", api.removeNote, sel)
	dg.POST("/columns", api.addColumn, sel)
	dg.DELETE("/columns/:field", api.removeColumn, sel)
	dg.PUT("/labels/:field", api.updateLabel, sel)
}

// Groups

func (api *rosterApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Groups())
}

func (api *rosterApi) createGroup(ctx echo.Context) error {
	var data roster.NewGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGroup")
	}
	grp, err := api.svc.AddGroup(ctx.Request().Context(), data.Name)
	if err != nil {
		return errors.Wrap(err, "creating group")
	}
	return ctx.JSON(http.StatusCreated, grp)
}

func (api *rosterApi) retrieve(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *rosterApi) destroy(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	if err = api.svc.RemoveGroup(ctx.Request().Context(), grp.ID); err != nil {
		return errors.Wrap(err, "removing group")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Selection

func (api *rosterApi) selection(ctx echo.Context) error {
	id, ok := api.svc.Selected()
	return ctx.JSON(http.StatusOK, SelectionResponse{ID: id, Selected: ok})
}

func (api *rosterApi) selectGroup(ctx echo.Context) error {
	var data SelectionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectionRequest")
	}
	if err := core.CheckStruct(data); err != nil {
		return err
	}
	if err := api.svc.SelectGroup(data.ID); err != nil {
		return errors.Wrap(err, "selecting group")
	}
	return api.selection(ctx)
}

func (api *rosterApi) clearSelection(ctx echo.Context) error {
	api.svc.ClearSelection()
	return ctx.NoContent(http.StatusNoContent)
}

// Students

func (api *rosterApi) student(groupID int64, studentID string) (roster.Student, error) {
	grp, err := api.svc.Group(groupID)
	if err != nil {
		return roster.Student{}, err
	}
	idx := grp.StudentIndex(studentID)
	if idx < 0 {
		return roster.Student{}, roster.ErrStudentNotFound
	}
	return grp.Students[idx], nil
}

func (api *rosterApi) addStudent(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	var data roster.NewStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	st, err := api.svc.AddStudent(ctx.Request().Context(), grp.ID, data.Name)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *rosterApi) insertStudent(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	var data InsertStudentRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to InsertStudentRequest")
	}
	if err = core.CheckStruct(data); err != nil {
		return err
	}
	st, err := api.svc.InsertStudentBelow(ctx.Request().Context(), grp.ID, *data.Index)
	if err != nil {
		return errors.Wrap(err, "inserting student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *rosterApi) removeStudent(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	if err = api.svc.RemoveStudent(ctx.Request().Context(), grp.ID, ctx.Param("sid")); err != nil {
		return errors.Wrap(err, "removing student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rosterApi) updateField(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	var data FieldValueRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FieldValueRequest")
	}
	if err = core.CheckStruct(data); err != nil {
		return err
	}

	val, err := roster.ParseValue(data.Value)
	if err != nil {
		return errors.Wrap(err, "parsing value")
	}

	sid := ctx.Param("sid")
	if err = api.svc.UpdateField(ctx.Request().Context(), grp.ID, sid, ctx.Param("field"), val); err != nil {
		return errors.Wrap(err, "updating field")
	}
	st, err := api.student(grp.ID, sid)
	if err != nil {
		return errors.Wrap(err, "reloading student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *rosterApi) toggleField(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	val, err := api.svc.ToggleField(ctx.Request().Context(), grp.ID, ctx.Param("sid"), ctx.Param("field"))
	if err != nil {
		return errors.Wrap(err, "toggling field")
	}
	return ctx.JSON(http.StatusOK, ToggleResponse{Value: val})
}

// Notes

func (api *rosterApi) addNote(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	idx, err := api.svc.AddNote(ctx.Request().Context(), grp.ID, ctx.Param("sid"), ctx.Param("field"))
	if err != nil {
		return errors.Wrap(err, "adding note")
	}
	return ctx.JSON(http.StatusCreated, NoteResponse{Index: idx})
}

func (api *rosterApi) updateNote(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	idx, err := intParam(ctx, "index")
	if err != nil {
		return err
	}
	var data TextRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TextRequest")
	}
	if err = api.svc.UpdateNote(ctx.Request().Context(), grp.ID, ctx.Param("sid"), ctx.Param("field"), idx, data.Text); err != nil {
		return errors.Wrap(err, "updating note")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rosterApi) removeNote(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	idx, err := intParam(ctx, "index")
	if err != nil {
		return err
	}
	if err = api.svc.RemoveNote(ctx.Request().Context(), grp.ID, ctx.Param("sid"), ctx.Param("field"), idx); err != nil {
		return errors.Wrap(err, "removing note")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Columns

func (api *rosterApi) addColumn(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	var data roster.NewColumn
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewColumn")
	}
	if err = api.svc.AddColumn(ctx.Request().Context(), grp.ID, data.Key, data.Kind); err != nil {
		return errors.Wrap(err, "adding column")
	}
	return api.groupResponse(ctx, http.StatusCreated, grp.ID)
}

func (api *rosterApi) removeColumn(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	if err = api.svc.RemoveColumn(ctx.Request().Context(), grp.ID, ctx.Param("field")); err != nil {
		return errors.Wrap(err, "removing column")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *rosterApi) updateLabel(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	var data TextRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TextRequest")
	}
	if err = api.svc.UpdateLabel(ctx.Request().Context(), grp.ID, ctx.Param("field"), data.Text); err != nil {
		return errors.Wrap(err, "updating label")
	}
	return api.groupResponse(ctx, http.StatusOK, grp.ID)
}

func (api *rosterApi) groupResponse(ctx echo.Context, code int, id int64) error {
	grp, err := api.svc.Group(id)
	if err != nil {
		return errors.Wrap(err, "reloading group")
	}
	return ctx.JSON(code, grp)
}

// Reports

func (api *rosterApi) textReport(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	return ctx.String(http.StatusOK, report.FormatText(grp))
}

func (api *rosterApi) documentReport(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	doc, err := report.FormatDocument(grp)
	if err != nil {
		return errors.Wrap(err, "formatting document")
	}
	filename := core.ExportFilename(api.export.Prefix, nowFunc())
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, core.ExportContentType, doc)
}

func (api *rosterApi) shareGroup(ctx echo.Context) error {
	grp, err := getContextGroup(ctx)
	if err != nil {
		return errors.Wrap(err, "retrieving group from context")
	}
	url := core.ShareURL(api.share.BaseURL, api.share.Handle, report.FormatText(grp))
	if err = api.shareSvc.Share(ctx.Request().Context(), url); err != nil {
		return errors.Wrap(err, "sharing group")
	}
	return ctx.JSON(http.StatusOK, ShareResponse{URL: url})
}
