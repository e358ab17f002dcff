package handler

import (
	"github.com/gin-gonic/gin"

	appbooksale "github.com/xiebiao/bookclub/internal/application/booksale"
	"github.com/xiebiao/bookclub/internal/domain/booksale"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/pkg/response"
)

// BookSaleHandler 图书售卖信息
type BookSaleHandler struct {
	useCase *appbooksale.UseCase
}

func NewBookSaleHandler(useCase *appbooksale.UseCase) *BookSaleHandler {
	return &BookSaleHandler{useCase: useCase}
}

// Create 创建售卖信息
// @Summary      创建售卖信息
// @Tags         图书售卖
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookSaleRequest true "售卖信息，price为最小货币单位"
// @Success      201 {object} response.Response{data=appbooksale.SaleResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/book-sales [post]
func (h *BookSaleHandler) Create(c *gin.Context) {
	var req dto.CreateBookSaleRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Create(c.Request.Context(), appbooksale.CreateRequest{
		BookID:    req.BookID,
		StoreName: req.StoreName,
		Price:     req.Price,
		Currency:  req.Currency,
		URL:       req.URL,
		InStock:   req.InStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// @Summary      售卖信息详情
// @Tags         图书售卖
// @Produce      json
// @Param        id path int true "售卖信息ID"
// @Success      200 {object} response.Response{data=appbooksale.SaleResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/book-sales/{id} [get]
func (h *BookSaleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// @Summary      更新售卖信息
// @Tags         图书售卖
// @Accept       json
// @Produce      json
// @Param        id      path int                       true "售卖信息ID"
// @Param        request body dto.UpdateBookSaleRequest true "更新内容"
// @Success      200 {object} response.Response{data=appbooksale.SaleResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/book-sales/{id} [put]
func (h *BookSaleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookSaleRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Update(c.Request.Context(), id, booksale.UpdateParams{
		StoreName: req.StoreName,
		Price:     req.Price,
		Currency:  req.Currency,
		URL:       req.URL,
		InStock:   req.InStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// @Summary      删除售卖信息
// @Tags         图书售卖
// @Param        id path int true "售卖信息ID"
// @Success      204
// @Failure      404 {object} response.ErrorBody
// @Router       /api/book-sales/{id} [delete]
func (h *BookSaleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// @Summary      售卖信息列表
// @Tags         图书售卖
// @Produce      json
// @Param        page       query int    false "页码"
// @Param        page_size  query int    false "每页数量"
// @Param        book_id    query int    false "图书ID"
// @Param        store_name query string false "商店名称"
// @Param        min_price  query int    false "最低价"
// @Param        max_price  query int    false "最高价"
// @Param        in_stock   query bool   false "是否有货"
// @Param        sort_by    query string false "price_asc | price_desc"
// @Success      200 {object} response.Response{data=common.Page[appbooksale.SaleResponse]}
// @Router       /api/book-sales [get]
func (h *BookSaleHandler) List(c *gin.Context) {
	var q dto.ListBookSalesQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.useCase.List(c.Request.Context(), appbooksale.ListRequest{
		PageQuery: q.ToPageQuery(),
		BookID:    q.BookID,
		StoreName: q.StoreName,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		InStock:   q.InStock,
		SortBy:    q.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
