package products

import (
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/go-injector/framework/config"
	gohttp "github.com/km-arc/go-injector/framework/http"
	"github.com/km-arc/go-injector/framework/routing"
	"github.com/km-arc/go-injector/framework/validation"
)

// Handler exposes ProductService over HTTP.
type Handler struct {
	Service ProductService `inject:""`
	Config  *config.Config `inject:""`
	Logger  *zap.Logger    `inject:""`
}

// Routes mounts:
//
//	GET  /products          → all stored products
//	GET  /products/{id}     → one product
//	POST /products/import   → load ?file= (default PRODUCTS_FILE) and store it
func (h *Handler) Routes(r *routing.Router) {
	r.Prefix("/products", func(r *routing.Router) {
		r.Get("/", h.index)
		r.Get("/{id}", h.show)
		r.Post("/import", h.importFile)
	})
}

func (h *Handler) index(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(h.Service.All())
}

func (h *Handler) show(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)

	id, err := gohttp.NewRequest(req).RouteParamInt("id")
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.Service.Find(id)
	if errors.Is(err, ErrNotFound) {
		res.NotFound(err.Error())
		return
	}
	if err != nil {
		res.ServerError()
		return
	}
	res.Success(p)
}

func (h *Handler) importFile(w http.ResponseWriter, req *http.Request) {
	request := gohttp.NewRequest(req)
	res := gohttp.NewResponse(w)

	input := map[string]string{"file": request.Query("file", h.Config.Products.File)}
	v := request.Validate(validation.Rules{"file": "required"}, input)
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	products, err := h.Service.GetAllFromFile(input["file"])
	if err != nil {
		h.Logger.Warn("import failed", zap.String("file", input["file"]), zap.Error(err))
		res.Error(http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.Service.Save(products...)
	h.Logger.Info("imported products", zap.String("file", input["file"]), zap.Int("count", len(products)))
	res.Created(map[string]int{"imported": len(products)})
}
