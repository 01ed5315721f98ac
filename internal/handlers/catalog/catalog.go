package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

type Service interface {
	ListCourses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type CatalogHandler struct {
	catalogService Service
}

func New(catalogService Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListCourses godoc
//
//	@Summary		List courses
//	@Description	Browse the catalog. Prices are the effective prices at the time of the request.
//	@Tags			Catalog
//	@Produce		json
//	@Param			category_id	query		int		false	"Category filter"
//	@Param			q			query		string	false	"Title substring"
//	@Param			sort		query		string	false	"title, price_asc, price_desc or newest"
//	@Param			available	query		bool	false	"Only courses that can be bought"
//	@Success		200			{array}		dto.CourseResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid filter"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/catalog/courses [get]
func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	courses, err := h.catalogService.ListCourses(r.Context(), filter)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.CourseResponseDTO, 0, len(courses))
	for _, c := range courses {
		response = append(response, dto.FromCourse(c))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetCourse godoc
//
//	@Summary	Get a course
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		int	true	"Course id"
//	@Success	200	{object}	dto.CourseResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid id"
//	@Failure	404	{object}	utils.Response	"Course not found"
//	@Router		/api/catalog/courses/{id} [get]
func (h *CatalogHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	course, err := h.catalogService.GetCourse(r.Context(), id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCourse(*course))
}

// ListCategories godoc
//
//	@Summary	List categories
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		dto.CategoryResponseDTO
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/catalog/categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.CategoryResponseDTO, 0, len(categories))
	for _, c := range categories {
		response = append(response, dto.FromCategory(c))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func parseFilter(r *http.Request) (domain.CourseFilter, error) {
	q := r.URL.Query()
	filter := domain.CourseFilter{
		Query: q.Get("q"),
		Sort:  domain.CourseSort(q.Get("sort")),
	}
	switch filter.Sort {
	case "", domain.SortByTitle, domain.SortByPriceAsc, domain.SortByPriceDesc, domain.SortByNewest:
	default:
		return filter, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, filter.Sort)
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, fmt.Errorf("%w: bad category_id", domain.ErrInvalidInput)
		}
		filter.CategoryID = &id
	}
	if raw := q.Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: bad available flag", domain.ErrInvalidInput)
		}
		filter.AvailableOnly = available
	}
	return filter, nil
}
