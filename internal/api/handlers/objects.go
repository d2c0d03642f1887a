package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ovbilous/priceboard/internal/store"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// ObjectsHandler handles real-estate object CRUD endpoints.
type ObjectsHandler struct {
	store store.Store
}

// NewObjectsHandler creates a new ObjectsHandler.
func NewObjectsHandler(s store.Store) *ObjectsHandler {
	return &ObjectsHandler{store: s}
}

// --- Input/Output types ---

// ObjectBody is the writable part of a real-estate object.
type ObjectBody struct {
	Name               string `json:"name"                            doc:"Object name"       minLength:"1"`
	Status             string `json:"status,omitempty"                doc:"Free-form status"`
	CurrentPricePerSqm string `json:"current_price_per_sqm,omitempty" doc:"Fallback base price when no income plans exist"`
	OversoldMethod     string `json:"oversold_method,omitempty"       doc:"Soldout ratio method" enum:"pieces,area,"`
}

// CreateObjectInput is the input for creating an empty object.
type CreateObjectInput struct {
	Body ObjectBody
}

// CreateObjectOutput is the response for creating an object.
type CreateObjectOutput struct {
	Status int
	Body   domain.RealEstateObject
}

// ListObjectsOutput is the response for listing objects.
type ListObjectsOutput struct {
	Body struct {
		Objects []domain.RealEstateObject `json:"objects"`
		Total   int                       `json:"total"`
	}
}

// GetObjectInput is the input for fetching one object aggregate.
type GetObjectInput struct {
	ID int64 `path:"id" doc:"Object ID"`
}

// GetObjectOutput is the response for fetching one object aggregate.
type GetObjectOutput struct {
	Body domain.RealEstateObject
}

// UpdateObjectInput is the input for updating an object's mutable fields.
type UpdateObjectInput struct {
	ID   int64 `path:"id" doc:"Object ID"`
	Body ObjectBody
}

// UpdateObjectOutput is the response for updating an object.
type UpdateObjectOutput struct {
	Body domain.RealEstateObject
}

// DeleteObjectInput is the input for deleting an object.
type DeleteObjectInput struct {
	ID int64 `path:"id" doc:"Object ID"`
}

// DeleteObjectOutput is the response for deleting an object.
type DeleteObjectOutput struct {
	Body StatusResponse
}

// --- Handlers ---

// CreateObject creates an empty real-estate object. Premises, income plans,
// and pricing configs are attached through their own endpoints.
func (h *ObjectsHandler) CreateObject(
	ctx context.Context,
	input *CreateObjectInput,
) (*CreateObjectOutput, error) {
	obj := &domain.RealEstateObject{
		Name:               input.Body.Name,
		Status:             input.Body.Status,
		CurrentPricePerSqm: input.Body.CurrentPricePerSqm,
		OversoldMethod:     domain.OversoldMethod(input.Body.OversoldMethod),
	}

	if err := h.store.CreateObject(ctx, obj); err != nil {
		return nil, huma.Error500InternalServerError("creating object failed: " + err.Error())
	}

	return &CreateObjectOutput{Status: http.StatusCreated, Body: *obj}, nil
}

// ListObjects returns all objects without their aggregates.
func (h *ObjectsHandler) ListObjects(
	ctx context.Context,
	_ *struct{},
) (*ListObjectsOutput, error) {
	objects, err := h.store.ListObjects(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("object query failed: " + err.Error())
	}

	resp := &ListObjectsOutput{}
	resp.Body.Objects = objects
	resp.Body.Total = len(objects)
	return resp, nil
}

// GetObject returns one object as a full aggregate.
func (h *ObjectsHandler) GetObject(
	ctx context.Context,
	input *GetObjectInput,
) (*GetObjectOutput, error) {
	obj, err := h.store.GetObject(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("object not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("object query failed: " + err.Error())
	}

	return &GetObjectOutput{Body: *obj}, nil
}

// UpdateObject updates an object's mutable fields.
func (h *ObjectsHandler) UpdateObject(
	ctx context.Context,
	input *UpdateObjectInput,
) (*UpdateObjectOutput, error) {
	obj, err := h.store.GetObject(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("object not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("object query failed: " + err.Error())
	}

	obj.Name = input.Body.Name
	obj.Status = input.Body.Status
	obj.CurrentPricePerSqm = input.Body.CurrentPricePerSqm
	if input.Body.OversoldMethod != "" {
		obj.OversoldMethod = domain.OversoldMethod(input.Body.OversoldMethod)
	}

	if err := h.store.UpdateObject(ctx, obj); err != nil {
		return nil, huma.Error500InternalServerError("updating object failed: " + err.Error())
	}

	return &UpdateObjectOutput{Body: *obj}, nil
}

// DeleteObject removes an object with its premises, plans, and configs.
func (h *ObjectsHandler) DeleteObject(
	ctx context.Context,
	input *DeleteObjectInput,
) (*DeleteObjectOutput, error) {
	if err := h.store.DeleteObject(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("object not found")
		}
		return nil, huma.Error500InternalServerError("deleting object failed: " + err.Error())
	}

	return &DeleteObjectOutput{Body: StatusResponse{Status: "deleted"}}, nil
}

// RegisterObjectRoutes registers object endpoints with the Huma API.
func RegisterObjectRoutes(api huma.API, h *ObjectsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-object",
		Method:        http.MethodPost,
		Path:          "/api/v1/objects",
		Summary:       "Create an object",
		Description:   "Creates an empty real-estate object.",
		Tags:          []string{"objects"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateObject)

	huma.Register(api, huma.Operation{
		OperationID: "list-objects",
		Method:      http.MethodGet,
		Path:        "/api/v1/objects",
		Summary:     "List objects",
		Description: "Returns all real-estate objects without their premises.",
		Tags:        []string{"objects"},
	}, h.ListObjects)

	huma.Register(api, huma.Operation{
		OperationID: "get-object",
		Method:      http.MethodGet,
		Path:        "/api/v1/objects/{id}",
		Summary:     "Get an object",
		Description: "Returns one object with its premises, income plans, and pricing configs.",
		Tags:        []string{"objects"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetObject)

	huma.Register(api, huma.Operation{
		OperationID: "update-object",
		Method:      http.MethodPut,
		Path:        "/api/v1/objects/{id}",
		Summary:     "Update an object",
		Description: "Updates an object's name, status, fallback price, and oversold method.",
		Tags:        []string{"objects"},
		Errors:      []int{http.StatusNotFound},
	}, h.UpdateObject)

	huma.Register(api, huma.Operation{
		OperationID: "delete-object",
		Method:      http.MethodDelete,
		Path:        "/api/v1/objects/{id}",
		Summary:     "Delete an object",
		Description: "Deletes an object; premises, plans, and configs cascade.",
		Tags:        []string{"objects"},
	}, h.DeleteObject)
}
