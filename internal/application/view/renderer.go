// Package view contiene el renderizador de vistas del back-office: llama al
// gateway, interpreta el sobre {success, data} y arma tablas o bloques de texto
// a partir de una definición de columnas.
package view

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/polimarket-client/internal/application/ports"
	"github.com/jhoicas/polimarket-client/internal/application/session"
	"github.com/jhoicas/polimarket-client/internal/domain"
	"github.com/jhoicas/polimarket-client/internal/domain/entity"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

// Targets de las acciones que no son vistas de catálogo.
const (
	TargetLogin = "loginResult"
	TargetSale  = "ventaResult"
)

// Params valores de formulario por nombre.
type Params map[string]string

// Renderer ejecuta vistas. Los errores del gateway nunca se propagan: se
// convierten en un Result de tipo error en el mismo Target.
type Renderer struct {
	gw       ports.Gateway
	session  *session.Session
	catalog  Catalog
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

// NewRenderer construye el renderizador con el catálogo por defecto.
func NewRenderer(gw ports.Gateway, sess *session.Session, log *logger.Logger) *Renderer {
	return &Renderer{
		gw:       gw,
		session:  sess,
		catalog:  DefaultCatalog(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.Component("view"),
		now:      time.Now,
	}
}

// Catalog vistas registradas.
func (r *Renderer) Catalog() Catalog { return r.catalog }

// Run ejecuta la vista key. Solo devuelve error si la vista no existe.
func (r *Renderer) Run(ctx context.Context, key string, params Params) (Result, error) {
	spec, ok := r.catalog.Get(key)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", domain.ErrUnknownView, key)
	}
	if spec.IsRecord() {
		return r.FetchRecord(ctx, spec, params), nil
	}
	return r.FetchTable(ctx, spec, params), nil
}

// checkRequired valida presencia de las entradas obligatorias.
func (r *Renderer) checkRequired(spec Spec, params Params) (string, bool) {
	for _, p := range spec.Params {
		if !p.Required {
			continue
		}
		if err := r.validate.Var(strings.TrimSpace(params[p.Name]), "required"); err != nil {
			msg := p.Message
			if msg == "" {
				msg = p.Label + " es requerido"
			}
			return msg, false
		}
	}
	return "", true
}

// fetch llama al gateway y devuelve el sobre; err ya viene con el mensaje para el usuario.
func (r *Renderer) fetch(ctx context.Context, spec Spec, params Params) (entity.Envelope, error) {
	path := spec.BuildPath(params)
	payload, err := r.gw.Call(ctx, path, ports.RequestOptions{})
	if err != nil {
		r.log.Warn().Err(err).Str("view", spec.Key).Str("path", path).Msg("vista con error")
		return entity.Envelope{}, err
	}
	env, _ := entity.ParseEnvelope(payload)
	return env, nil
}

// FetchTable patrón genérico: entrada → endpoint → tabla según columnas.
func (r *Renderer) FetchTable(ctx context.Context, spec Spec, params Params) Result {
	if msg, ok := r.checkRequired(spec, params); !ok {
		return errorResult(spec, msg)
	}
	env, err := r.fetch(ctx, spec, params)
	if err != nil {
		return errorResult(spec, err.Error())
	}
	if !env.Success {
		return textResult(spec, spec.EmptyMessage)
	}
	items, ok := env.Data.List(spec.ListField)
	if !ok {
		return textResult(spec, spec.EmptyMessage)
	}

	table := &Table{Headers: spec.Headers(), Rows: make([][]string, 0, len(items))}
	for _, item := range items {
		row := make([]string, len(spec.Columns))
		for i, col := range spec.Columns {
			row[i] = col.Cell(item)
		}
		table.Rows = append(table.Rows, row)
	}
	return Result{View: spec.Key, Target: spec.Target, Kind: KindTable, Table: table}
}

// FetchRecord vistas de un solo objeto: líneas "Etiqueta: valor".
func (r *Renderer) FetchRecord(ctx context.Context, spec Spec, params Params) Result {
	if msg, ok := r.checkRequired(spec, params); !ok {
		return errorResult(spec, msg)
	}
	env, err := r.fetch(ctx, spec, params)
	if err != nil {
		return errorResult(spec, err.Error())
	}
	if !env.Success || env.Data == nil {
		return textResult(spec, spec.EmptyMessage)
	}
	lines := make([]Line, len(spec.Columns))
	for i, col := range spec.Columns {
		lines[i] = Line{Label: col.Header, Value: col.Cell(env.Data)}
	}
	return Result{View: spec.Key, Target: spec.Target, Kind: KindText, Heading: spec.Heading, Lines: lines}
}

var loginSpec = Spec{Key: "login", Target: TargetLogin}

// Login autentica al vendedor y guarda el token en la sesión.
func (r *Renderer) Login(ctx context.Context, form LoginForm) Result {
	form.Email = strings.TrimSpace(form.Email)
	if err := r.validate.Struct(form); err != nil {
		return errorResult(loginSpec, "Por favor ingrese email y contraseña")
	}

	payload, err := r.gw.Call(ctx, "/auth/login", ports.RequestOptions{Method: http.MethodPost, Body: form})
	if err != nil {
		r.log.Warn().Err(err).Str("email", form.Email).Msg("login fallido")
		return errorResult(loginSpec, err.Error())
	}
	env, _ := entity.ParseEnvelope(payload)
	if !env.Success {
		return errorResult(loginSpec, "Error en el login")
	}

	token, _ := env.Data.String("access_token")
	if token == "" {
		return errorResult(loginSpec, "La respuesta de login no incluye access_token")
	}
	if err := r.session.SetToken(ctx, token); err != nil {
		r.log.Error().Err(err).Msg("no se pudo guardar el token")
		return errorResult(loginSpec, fmt.Sprintf("no se pudo guardar la sesión: %v", err))
	}

	nombre := ""
	if vendedor, ok := env.Data.Object("vendedor"); ok {
		nombre, _ = vendedor.String("nombre")
	}
	r.log.Info().Str("email", form.Email).Msg("login exitoso")
	return textResult(loginSpec, "Login exitoso para: "+nombre)
}

var saleSpec = Spec{Key: "venta", Target: TargetSale}

// CreateSale registra una venta con fecha de hoy. Requiere sesión iniciada.
func (r *Renderer) CreateSale(ctx context.Context, form SaleForm) Result {
	if !r.session.Authenticated(ctx) {
		return errorResult(saleSpec, domain.ErrUnauthenticated.Error())
	}
	if err := r.validate.Struct(form); err != nil {
		return errorResult(saleSpec, saleMessage(err))
	}

	body := struct {
		SaleForm
		Fecha string `json:"fecha"`
	}{SaleForm: form, Fecha: r.now().Format(session.DateLayout)}

	payload, err := r.gw.Call(ctx, "/ventas/", ports.RequestOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) {
			r.log.Warn().Int("status", reqErr.Status).Str("kind", string(reqErr.Kind)).Msg("venta rechazada")
		}
		return errorResult(saleSpec, err.Error())
	}
	env, _ := entity.ParseEnvelope(payload)
	if !env.Success || env.Data == nil {
		return errorResult(saleSpec, "Error creando venta")
	}

	lines := []Line{
		{Label: "ID de Venta", Value: Col("", "venta_id").Cell(env.Data)},
		{Label: "Total", Value: MoneyCol("", "total").Cell(env.Data)},
		{Label: "Fecha", Value: Col("", "fecha").Cell(env.Data)},
	}
	return Result{View: saleSpec.Key, Target: saleSpec.Target, Kind: KindText, Heading: "Venta creada exitosamente", Lines: lines}
}

// CreateSaleFromInput arma el formulario desde texto libre (IDs y "producto:cantidad")
// y registra la venta. La sesión se verifica antes de interpretar la entrada.
func (r *Renderer) CreateSaleFromInput(ctx context.Context, vendedorID, clienteID, detalles string) Result {
	if !r.session.Authenticated(ctx) {
		return errorResult(saleSpec, domain.ErrUnauthenticated.Error())
	}
	lines, err := ParseSaleLines(detalles)
	if err != nil {
		return errorResult(saleSpec, err.Error())
	}
	form := SaleForm{Detalles: lines}
	// Un ID no numérico queda en 0 y lo rechaza la validación gt=0.
	form.VendedorID, _ = strconv.Atoi(strings.TrimSpace(vendedorID))
	form.ClienteID, _ = strconv.Atoi(strings.TrimSpace(clienteID))
	return r.CreateSale(ctx, form)
}
