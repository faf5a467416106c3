package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core/roster"
)

const groupCtxKey = "object"

var errGroupNotFoundInCtx = errors.New("group not found in echo.Context")

// groupMiddleware loads the `:id` group into the context. With selectGroup, the group also becomes
// the selected group, which every group-scoped mutation requires.
func groupMiddleware(svc *roster.Service, selectGroup bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
			if err != nil {
				return errHttpNotFound
			}
			grp, err := svc.Group(id)
			if err != nil {
				return err
			}
			if selectGroup {
				if err = svc.SelectGroup(id); err != nil {
					return err
				}
			}
			ctx.Set(groupCtxKey, grp)
			return next(ctx)
		}
	}
}

func getContextGroup(ctx echo.Context) (roster.Group, error) {
	grp, ok := ctx.Get(groupCtxKey).(roster.Group)
	if !ok {
		return roster.Group{}, errGroupNotFoundInCtx
	}
	return grp, nil
}

func intParam(ctx echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpBadRequest
	}
	return v, nil
}
