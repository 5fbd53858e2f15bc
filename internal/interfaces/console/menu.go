package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/polimarket-client/internal/application/view"
	"github.com/jhoicas/polimarket-client/internal/domain"
)

type menuEntry struct {
	label  string
	action func(c *cli.Context) error
}

func (r *runner) menuEntries() []menuEntry {
	entries := []menuEntry{{label: "Login de Vendedor", action: r.menuLogin}}
	catalog := r.svc.Renderer.Catalog()
	for _, key := range catalog.Keys() {
		spec, _ := catalog.Get(key)
		entries = append(entries, menuEntry{label: spec.Title, action: func(c *cli.Context) error {
			return r.menuView(c, spec)
		}})
	}
	return append(entries,
		menuEntry{label: "Crear Venta", action: r.menuSale},
		menuEntry{label: "Cerrar sesión", action: func(c *cli.Context) error {
			if err := r.svc.Session.Logout(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(r.out, "Sesión cerrada")
			return nil
		}},
	)
}

// menu bucle interactivo; termina con la opción Salir o al agotarse la entrada.
func (r *runner) menu(c *cli.Context) error {
	fmt.Fprintln(r.out, "🚀 Iniciando Cliente de Consola PoliMarket...")
	entries := r.menuEntries()
	exit := len(entries) + 1

	for {
		r.printMenu(entries)
		opt, ok := r.prompt("Seleccione una opción: ")
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(opt)
		switch {
		case err != nil || n < 1 || n > exit:
			fmt.Fprintln(r.out, "❌ Opción inválida")
		case n == exit:
			fmt.Fprintln(r.out, "👋 ¡Hasta luego!")
			return nil
		default:
			// Los errores de vista ya quedaron impresos; el menú sigue.
			if err := entries[n-1].action(c); err != nil && !errors.Is(err, ErrCommandFailed) {
				fmt.Fprintf(r.out, "❌ %v\n", err)
			}
		}
	}
}

func (r *runner) printMenu(entries []menuEntry) {
	fmt.Fprintln(r.out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(r.out, "           POLIMARKET - CLIENTE DE CONSOLA")
	fmt.Fprintln(r.out, strings.Repeat("=", 60))
	for i, e := range entries {
		fmt.Fprintf(r.out, "%d. %s\n", i+1, e.label)
	}
	fmt.Fprintf(r.out, "%d. Salir\n", len(entries)+1)
	fmt.Fprintln(r.out, strings.Repeat("-", 60))
}

// prompt lee una línea; ok=false si la entrada terminó.
func (r *runner) prompt(label string) (string, bool) {
	fmt.Fprint(r.out, label)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *runner) menuLogin(c *cli.Context) error {
	email, _ := r.prompt("Email: ")
	password, _ := r.prompt("Contraseña: ")
	return r.show("", r.svc.Renderer.Login(c.Context, view.LoginForm{Email: email, Password: password}))
}

func (r *runner) menuView(c *cli.Context, spec view.Spec) error {
	params := view.Params{}
	for _, p := range spec.Params {
		label := p.Label
		def := ""
		if p.Date {
			def = r.svc.Bootstrapper.DefaultDate()
			label = fmt.Sprintf("%s (YYYY-MM-DD) [%s]", p.Label, def)
		}
		v, _ := r.prompt(label + ": ")
		if v == "" {
			v = def
		}
		params[p.Name] = v
	}
	return r.runView(c, spec, params)
}

func (r *runner) menuSale(c *cli.Context) error {
	if !r.svc.Session.Authenticated(c.Context) {
		fmt.Fprintln(r.out, "❌", domain.ErrUnauthenticated)
		return nil
	}
	vendedor, _ := r.prompt("ID del vendedor: ")
	cliente, _ := r.prompt("ID del cliente: ")

	var detalles []string
	for {
		prod, ok := r.prompt("ID del producto (o 'fin' para terminar): ")
		if !ok || strings.EqualFold(prod, "fin") {
			break
		}
		qty, _ := r.prompt("Cantidad: ")
		detalles = append(detalles, prod+":"+qty)
	}
	return r.show("", r.svc.Renderer.CreateSaleFromInput(c.Context, vendedor, cliente, strings.Join(detalles, ",")))
}
