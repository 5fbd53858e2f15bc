package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/polimarket-client/internal/app"
	"github.com/jhoicas/polimarket-client/internal/application/view"
)

// ErrCommandFailed el comando terminó con un resultado de error ya impreso.
var ErrCommandFailed = errors.New("console: el comando terminó con error")

// Builder arma los servicios; attachToken fuerza el envío del Bearer.
type Builder func(ctx context.Context, attachToken bool) (*app.Services, error)

type runner struct {
	build Builder
	svc   *app.Services
	in    *bufio.Scanner
	out   io.Writer
	debug bool
}

// NewApp construye la aplicación de consola: un subcomando por vista del
// catálogo más login, logout, venta, session, health y menu.
func NewApp(build Builder, in io.Reader, out io.Writer) *cli.App {
	r := &runner{build: build, in: bufio.NewScanner(in), out: out}

	commands := []*cli.Command{
		{
			Name:  "login",
			Usage: "Login de vendedor",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
				&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
			},
			Action: func(c *cli.Context) error {
				res := r.svc.Renderer.Login(c.Context, view.LoginForm{Email: c.String("email"), Password: c.String("password")})
				return r.show("", res)
			},
		},
		{
			Name:  "logout",
			Usage: "Cerrar sesión",
			Action: func(c *cli.Context) error {
				if err := r.svc.Session.Logout(c.Context); err != nil {
					return err
				}
				fmt.Fprintln(r.out, "Sesión cerrada")
				return nil
			},
		},
		{
			Name:  "venta",
			Usage: "Crear venta (requiere login)",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "vendedor", Required: true, Usage: "ID del vendedor"},
				&cli.StringFlag{Name: "cliente", Required: true, Usage: "ID del cliente"},
				&cli.StringFlag{Name: "detalles", Required: true, Usage: `productos como "id:cantidad, id:cantidad"`},
			},
			Action: func(c *cli.Context) error {
				res := r.svc.Renderer.CreateSaleFromInput(c.Context, c.String("vendedor"), c.String("cliente"), c.String("detalles"))
				return r.show("", res)
			},
		},
		{
			Name:  "session",
			Usage: "Estado de la sesión guardada",
			Action: func(c *cli.Context) error {
				st := r.svc.Session.Status(c.Context, time.Now())
				if !st.Authenticated {
					fmt.Fprintln(r.out, "Sin sesión iniciada")
					return nil
				}
				fmt.Fprintln(r.out, "Sesión iniciada")
				if st.Subject != "" {
					fmt.Fprintf(r.out, "Usuario: %s\n", st.Subject)
				}
				if st.ExpiresAt != nil {
					fmt.Fprintf(r.out, "Expira: %s (expirada: %t)\n", st.ExpiresAt.Format(time.RFC3339), st.Expired)
				}
				return nil
			},
		},
		{
			Name:  "health",
			Usage: "Verificar conexión con el servidor PoliMarket",
			Action: func(c *cli.Context) error {
				if !r.svc.Bootstrapper.CheckHealth(c.Context) {
					fmt.Fprintln(r.out, "❌ No se pudo conectar al servidor PoliMarket")
					return ErrCommandFailed
				}
				fmt.Fprintln(r.out, "✅ Conectado al servidor PoliMarket")
				return nil
			},
		},
		{
			Name:   "menu",
			Usage:  "Menú interactivo",
			Action: r.menu,
		},
	}

	for _, key := range view.DefaultCatalog().Keys() {
		spec, _ := view.DefaultCatalog().Get(key)
		commands = append(commands, r.viewCommand(spec))
	}

	return &cli.App{
		Name:      "polimarket",
		Usage:     "Cliente de consola PoliMarket",
		Writer:    out,
		ErrWriter: out,
		Reader:    in,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "imprime el JSON de la última respuesta de la API"},
			&cli.BoolFlag{Name: "token", Value: true, Usage: "adjunta Authorization: Bearer <token> si hay sesión"},
		},
		Before: func(c *cli.Context) error {
			svc, err := r.build(c.Context, c.Bool("token"))
			if err != nil {
				return err
			}
			r.svc = svc
			r.debug = c.Bool("debug")
			return nil
		},
		After: func(c *cli.Context) error {
			if r.svc == nil {
				return nil
			}
			return r.svc.Close()
		},
		Commands: commands,
	}
}

// paramFlag nombre de la opción para un parámetro: los *_id se piden con --id.
func paramFlag(p view.Param) string {
	if strings.HasSuffix(p.Name, "_id") {
		return "id"
	}
	return p.Name
}

func (r *runner) viewCommand(spec view.Spec) *cli.Command {
	cmd := &cli.Command{
		Name:     spec.Key,
		Usage:    spec.Title,
		Category: spec.Section,
	}
	for _, p := range spec.Params {
		cmd.Flags = append(cmd.Flags, &cli.StringFlag{Name: paramFlag(p), Usage: p.Label})
		cmd.ArgsUsage = "[" + p.Label + "]"
	}
	cmd.Action = func(c *cli.Context) error {
		params := view.Params{}
		for _, p := range spec.Params {
			v := c.String(paramFlag(p))
			if v == "" {
				v = c.Args().First()
			}
			params[p.Name] = v
		}
		return r.runView(c, spec, params)
	}
	return cmd
}

func (r *runner) runView(c *cli.Context, spec view.Spec, params view.Params) error {
	res, err := r.svc.Renderer.Run(c.Context, spec.Key, params)
	if err != nil {
		return err
	}
	return r.show(spec.Title, res)
}

// show imprime el resultado y, con --debug, el payload crudo.
func (r *runner) show(title string, res view.Result) error {
	if err := Render(r.out, title, res); err != nil {
		return err
	}
	if r.debug {
		fmt.Fprintf(r.out, "\n--- respuesta de la API ---\n%s\n", r.svc.Debug.Last())
	}
	if res.IsError() {
		return ErrCommandFailed
	}
	return nil
}
