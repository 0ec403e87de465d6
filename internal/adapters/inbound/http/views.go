package httpin

import (
	"bytes"
	"fmt"
	"html/template"

	"drinkstand/internal/core/domain"
	"drinkstand/internal/core/service"
	"drinkstand/internal/web"

	"github.com/dustin/go-humanize"
)

type pageVM struct {
	Authenticated bool
	Flash         flashVM
	Menu          menuVM
	Cart          cartVM
	History       historyVM
}

type flashVM struct {
	Severity service.Severity
	Message  string
}

type menuButton struct {
	Index int
	Name  string
}

type menuVM struct {
	Drinks []menuButton
	List   string
}

type cartVM struct {
	Items domain.CartSummary
	Total int
	Empty bool
}

type orderVM struct {
	Label string
	Date  string
	Ago   string
	Total int
	Items []domain.LineItem
}

type historyVM struct {
	Orders     []orderVM
	Latest     *orderVM
	ShareLink  string
	Stats      domain.Stats
	DrinksSold string
	Hidden     int
}

func parseTemplates() *template.Template {
	return template.Must(web.Templates())
}

func render(t *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func newMenuVM(m domain.Menu) menuVM {
	vm := menuVM{List: m.String()}
	for i, d := range m {
		vm.Drinks = append(vm.Drinks, menuButton{Index: i, Name: d})
	}
	return vm
}

func newCartVM(s domain.CartSummary) cartVM {
	return cartVM{Items: s, Total: s.Total(), Empty: len(s) == 0}
}

func newOrderVM(o domain.Order) orderVM {
	return orderVM{
		Label: o.Label(),
		Date:  o.Date.UTC().Format(domain.ShareDateLayout),
		Ago:   humanize.Time(o.Date),
		Total: o.TotalQuantity(),
		Items: o.Items,
	}
}

// newHistoryVM lists the newest orders first, at most limit of them.
func newHistoryVM(lines []domain.OrderLine, shareBaseURL string, limit int) historyVM {
	orders := domain.GroupByOrder(lines)
	vm := historyVM{Stats: domain.ComputeStats(lines)}
	vm.DrinksSold = humanize.Comma(int64(vm.Stats.Drinks))

	if latest, ok := domain.LatestOrder(lines); ok {
		l := newOrderVM(latest)
		vm.Latest = &l
		vm.ShareLink = domain.ShareLink(shareBaseURL, latest)
	}

	for i := len(orders) - 1; i >= 0; i-- {
		if limit > 0 && len(vm.Orders) == limit {
			vm.Hidden = i + 1
			break
		}
		vm.Orders = append(vm.Orders, newOrderVM(orders[i]))
	}
	return vm
}
