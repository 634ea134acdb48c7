package handlers

import (
  "errors"
  "fmt"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/yungbote/3dmarket-backend/internal/logger"
  "github.com/yungbote/3dmarket-backend/internal/services"
)

type AssetHandler struct {
  log            *logger.Logger
  assetService   services.AssetService
  pictureService services.PictureService
}

func NewAssetHandler(log *logger.Logger, assetService services.AssetService, pictureService services.PictureService) *AssetHandler {
  handlerLog := log.With("handler", "AssetHandler")
  return &AssetHandler{log: handlerLog, assetService: assetService, pictureService: pictureService}
}

func (ah *AssetHandler) GetAllAssets(c *gin.Context) {
  search := c.Query("search")
  assets, err := ah.assetService.List(c.Request.Context(), search)
  if err != nil {
    RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. %v", err))
    return
  }
  RespondData(c, http.StatusOK, assets, "3D Assets have been retrieved")
}

func (ah *AssetHandler) GetAssetById(c *gin.Context) {
  rawID := c.Param("id")
  assetID, err := strconv.ParseUint(rawID, 10, 64)
  if err != nil {
    // A non-numeric id can never match a row, report it the same way as a
    // missing one.
    RespondError(c, http.StatusNotFound, fmt.Sprintf("3D Asset with ID %s not found", rawID))
    return
  }
  asset, err := ah.assetService.GetByID(c.Request.Context(), uint(assetID))
  if err != nil {
    if errors.Is(err, services.ErrAssetNotFound) {
      RespondError(c, http.StatusNotFound, fmt.Sprintf("3D Asset with ID %s not found", rawID))
      return
    }
    RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. %v", err))
    return
  }
  RespondData(c, http.StatusOK, asset, "3D Asset has been retrieved")
}

func (ah *AssetHandler) CreateAsset(c *gin.Context) {
  var req struct {
    Name        string `form:"name" binding:"required"`
    Category    string `form:"category" binding:"required"`
    Price       string `form:"price" binding:"required"`
    Description string `form:"description"`
  }
  if err := c.ShouldBind(&req); err != nil {
    RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. %v", err))
    return
  }
  price, err := strconv.ParseFloat(req.Price, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. price %q is not a number", req.Price))
    return
  }

  filename := ""
  if file, fErr := c.FormFile("asset_picture"); fErr == nil && file != nil {
    filename, err = ah.pictureService.Save(c.Request.Context(), file)
    if err != nil {
      RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. %v", err))
      return
    }
  }

  asset, err := ah.assetService.Create(c.Request.Context(), services.AssetCreateInput{
    Name:        req.Name,
    Category:    req.Category,
    Price:       price,
    Description: req.Description,
  }, filename)
  if err != nil {
    RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. %v", err))
    return
  }
  RespondData(c, http.StatusOK, asset, "New 3D Asset has been created")
}

func (ah *AssetHandler) UpdateAsset(c *gin.Context) {
  rawID := c.Param("id")
  assetID, err := strconv.ParseUint(rawID, 10, 64)
  if err != nil {
    RespondError(c, http.StatusNotFound, fmt.Sprintf("3D Asset with ID %s not found", rawID))
    return
  }

  // Absent form fields stay nil and keep their stored value; a field that
  // was sent is applied even when it is empty or zero.
  var in services.AssetUpdateInput
  if v, ok := c.GetPostForm("name"); ok {
    in.Name = &v
  }
  if v, ok := c.GetPostForm("category"); ok {
    in.Category = &v
  }
  if v, ok := c.GetPostForm("description"); ok {
    in.Description = &v
  }
  if v, ok := c.GetPostForm("price"); ok {
    price, pErr := strconv.ParseFloat(v, 64)
    if pErr != nil {
      RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. price %q is not a number", v))
      return
    }
    in.Price = &price
  }

  filename := ""
  if file, fErr := c.FormFile("asset_picture"); fErr == nil && file != nil {
    filename, err = ah.pictureService.Save(c.Request.Context(), file)
    if err != nil {
      RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. %v", err))
      return
    }
  }

  asset, err := ah.assetService.Update(c.Request.Context(), uint(assetID), in, filename)
  if err != nil {
    if errors.Is(err, services.ErrAssetNotFound) {
      RespondError(c, http.StatusNotFound, fmt.Sprintf("3D Asset with ID %s not found", rawID))
      return
    }
    RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. %v", err))
    return
  }
  RespondData(c, http.StatusOK, asset, "3D Asset has been updated")
}

func (ah *AssetHandler) DeleteAsset(c *gin.Context) {
  rawID := c.Param("id")
  assetID, err := strconv.ParseUint(rawID, 10, 64)
  if err != nil {
    RespondError(c, http.StatusNotFound, fmt.Sprintf("3D Asset with ID %s not found", rawID))
    return
  }
  asset, err := ah.assetService.Delete(c.Request.Context(), uint(assetID))
  if err != nil {
    if errors.Is(err, services.ErrAssetNotFound) {
      RespondError(c, http.StatusNotFound, fmt.Sprintf("3D Asset with ID %s not found", rawID))
      return
    }
    RespondError(c, http.StatusBadRequest, fmt.Sprintf("There is an error. %v", err))
    return
  }
  RespondData(c, http.StatusOK, asset, fmt.Sprintf("3D Asset with ID %s has been deleted", rawID))
}
