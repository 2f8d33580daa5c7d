package handler

import (
	"github.com/gofiber/fiber/v2"

	"rosapi/internal/model"
	"rosapi/internal/service"
)

// AccessTokenHeader carries the caller's GitHub token. It is forwarded to GitHub as is.
const AccessTokenHeader = "Github-Access-Token"

func repositoryRef(c *fiber.Ctx) (service.RepositoryRef, bool) {
	token := c.Get(AccessTokenHeader)
	return service.RepositoryRef{
		Owner:       c.Params("owner"),
		Name:        c.Params("repo"),
		AccessToken: token,
	}, token != ""
}

func missingToken(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "MISSING_ACCESS_TOKEN", AccessTokenHeader+" header is required")
}

func internalError(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func decodeWrapper(c *fiber.Ctx) (*model.ROSWrapper, error) {
	var w model.ROSWrapper
	if err := c.BodyParser(&w); err != nil {
		return nil, err
	}
	return &w, nil
}

// FetchAllROSes lists every ROS in the repository.
//
// @Summary  List ROSes
// @Tags     ros
// @Produce  json
// @Param    owner                path   string true "Repository owner"
// @Param    repo                 path   string true "Repository name"
// @Param    Github-Access-Token  header string true "GitHub access token"
// @Success  200 {array}  model.ROSResult "Only the items that were read successfully"
// @Failure  500 {array}  model.ROSResult "Every item, when none succeeded"
// @Router   /api/{owner}/{repo}/all [get]
func FetchAllROSes(svc service.ROSService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, ok := repositoryRef(c)
		if !ok {
			return missingToken(c)
		}

		results, err := svc.FetchAllROSes(c.UserContext(), ref)
		if err != nil {
			return internalError(c)
		}
		if results == nil {
			results = []model.ROSResult{}
		}

		succeeded := successfulResults(results)
		if len(succeeded) == 0 {
			return c.Status(fiber.StatusInternalServerError).JSON(results)
		}
		return c.Status(fiber.StatusOK).JSON(succeeded)
	}
}

// CreateROS commits a new ROS on its own branch.
//
// @Summary  Create ROS
// @Tags     ros
// @Accept   json
// @Produce  json
// @Param    owner                path   string           true "Repository owner"
// @Param    repo                 path   string           true "Repository name"
// @Param    Github-Access-Token  header string           true "GitHub access token"
// @Param    body                 body   model.ROSWrapper true "ROS content"
// @Success  200 {object} model.ProcessROSResult
// @Failure  400 {object} errorPayload
// @Failure  500 {object} model.ProcessROSResult
// @Router   /api/{owner}/{repo} [post]
func CreateROS(svc service.ROSService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, ok := repositoryRef(c)
		if !ok {
			return missingToken(c)
		}
		w, err := decodeWrapper(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must be a ROS wrapper")
		}

		res, err := svc.CreateROS(c.UserContext(), ref, w)
		if err != nil {
			return internalError(c)
		}
		return c.Status(processingStatusCode(res.Status)).JSON(res)
	}
}

// EditROS commits new content for an existing ROS id.
//
// @Summary  Update ROS
// @Tags     ros
// @Accept   json
// @Produce  json
// @Param    owner                path   string           true "Repository owner"
// @Param    repo                 path   string           true "Repository name"
// @Param    id                   path   string           true "ROS id"
// @Param    Github-Access-Token  header string           true "GitHub access token"
// @Param    body                 body   model.ROSWrapper true "ROS content"
// @Success  200 {object} model.ProcessROSResult
// @Failure  400 {object} errorPayload
// @Failure  500 {object} model.ProcessROSResult
// @Router   /api/{owner}/{repo}/{id} [put]
func EditROS(svc service.ROSService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, ok := repositoryRef(c)
		if !ok {
			return missingToken(c)
		}
		w, err := decodeWrapper(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must be a ROS wrapper")
		}

		res, err := svc.UpdateROS(c.UserContext(), ref, c.Params("id"), w)
		if err != nil {
			return internalError(c)
		}
		return c.Status(processingStatusCode(res.Status)).JSON(res)
	}
}

// FetchDraftsSentToPublication lists ROSes waiting in an open pull request.
//
// @Summary  Pending publication
// @Tags     ros
// @Produce  json
// @Param    owner                path   string true "Repository owner"
// @Param    repo                 path   string true "Repository name"
// @Param    Github-Access-Token  header string true "GitHub access token"
// @Success  200 {object} model.ROSIdentifiersResult
// @Failure  500 {object} model.ROSIdentifiersResult
// @Router   /api/{owner}/{repo}/sentToPublication [get]
func FetchDraftsSentToPublication(svc service.ROSService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, ok := repositoryRef(c)
		if !ok {
			return missingToken(c)
		}

		res, err := svc.FetchDraftsSentToPublication(c.UserContext(), ref)
		if err != nil {
			return internalError(c)
		}
		return c.Status(simpleStatusCode(res.Status)).JSON(res)
	}
}

// PublishROS opens the pull request that sends a draft for approval.
//
// @Summary  Publish ROS
// @Tags     ros
// @Produce  json
// @Param    owner                path   string true "Repository owner"
// @Param    repo                 path   string true "Repository name"
// @Param    id                   path   string true "ROS id"
// @Param    Github-Access-Token  header string true "GitHub access token"
// @Success  200 {object} model.ROSPublishedObjectResult
// @Failure  500 {object} model.ROSPublishedObjectResult
// @Router   /api/{owner}/{repo}/publish/{id} [post]
func PublishROS(svc service.ROSService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref, ok := repositoryRef(c)
		if !ok {
			return missingToken(c)
		}

		res, err := svc.PublishROS(c.UserContext(), ref, c.Params("id"))
		if err != nil {
			return internalError(c)
		}
		return c.Status(simpleStatusCode(res.Status)).JSON(res)
	}
}
