package campaignController

import (
	"crowdfund/config"
	"crowdfund/errs"
	"crowdfund/middleware"
	"crowdfund/services"
	campaignValidator "crowdfund/validators/campaign"
	"io"

	"github.com/gofiber/fiber/v2"
)

// CampaignController exposes campaign CRUD and image attachment.
type CampaignController struct {
	Service *services.CampaignService
}

func NewCampaignController(service *services.CampaignService) *CampaignController {
	return &CampaignController{Service: service}
}

// CreateCampaign stores a new campaign for a seller
func (ct *CampaignController) CreateCampaign(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCampaign").(*campaignValidator.CreateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	receipt, err := ct.Service.Create(c.Context(), services.CreateCampaignInput{
		Title:        reqData.Title,
		Description:  reqData.Description,
		CostBase:     reqData.CostBase,
		CheckoutLink: reqData.CheckoutLink,
		SellerID:     reqData.SellerID,
	})
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Campaign created!", receipt)
}

// GetCampaign returns a campaign by its public identifier
func (ct *CampaignController) GetCampaign(c *fiber.Ctx) error {
	publicID := c.Params("publicId")
	if publicID == "" {
		return errs.New(errs.KindValidation, "Public ID is required.")
	}

	view, err := ct.Service.GetByPublicID(c.Context(), publicID)
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Campaign fetched!", view)
}

// PatchCampaign applies a partial update to a campaign
func (ct *CampaignController) PatchCampaign(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return errs.New(errs.KindValidation, "Campaign ID must be a positive number.")
	}

	reqData, ok := c.Locals("validatedCampaignUpdate").(*campaignValidator.UpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ct.Service.Update(c.Context(), uint(id), services.UpdateCampaignInput{
		Title:        reqData.Title,
		Description:  reqData.Description,
		CostBase:     reqData.CostBase,
		CheckoutLink: reqData.CheckoutLink,
	}); err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Campaign updated!", nil)
}

// PostCampaignImages attaches uploaded images to a campaign
func (ct *CampaignController) PostCampaignImages(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return errs.New(errs.KindValidation, "Campaign ID must be a positive number.")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return errs.New(errs.KindValidation, "Multipart form with an images field is required.")
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		return errs.New(errs.KindValidation, "At least one image is required.")
	}

	maxSize := int64(config.AppConfig.MaxImageSizeMB) << 20
	files := make([]services.UploadFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxSize {
			return errs.New(errs.KindValidation, "Image exceeds the size limit.")
		}

		src, err := header.Open()
		if err != nil {
			return errs.Wrap(errs.KindInternal, "failed to open uploaded file", err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return errs.Wrap(errs.KindInternal, "failed to read uploaded file", err)
		}

		files = append(files, services.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	images, err := ct.Service.AttachImages(c.Context(), uint(id), files)
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Images attached!", images)
}
