package scenario

// gridKey addresses the in-stock decision grid.
type gridKey struct {
	Band string
	Risk string
}

// gridCodes pairs the A/B-tier code with the C/D-tier code for one cell.
// A/B tier always takes the lower-numbered, higher-priority half.
type gridCodes struct {
	Top string
	Low string
}

// inStockGrid is the 3×4 in-stock decision grid. Stock bands collapse to
// Elevado/Normal/Bajo (band Cero never reaches this branch) and risk levels
// Bajo and Cero share the bottom row.
var inStockGrid = map[gridKey]gridCodes{
	{"Elevado", "Crítico"}: {"1", "14"},
	{"Elevado", "Alto"}:    {"2", "15"},
	{"Elevado", "Medio"}:   {"3", "16"},
	{"Elevado", "Bajo"}:    {"4", "17"},
	{"Normal", "Crítico"}:  {"5", "18"},
	{"Normal", "Alto"}:     {"6", "19"},
	{"Normal", "Medio"}:    {"7", "20"},
	{"Normal", "Bajo"}:     {"8", "21"},
	{"Bajo", "Crítico"}:    {"9", "22"},
	{"Bajo", "Alto"}:       {"10", "23"},
	{"Bajo", "Medio"}:      {"11", "24"},
	{"Bajo", "Bajo"}:       {"12", "25"},
}

// stockoutTiers are the urgency buckets over the rotation share of the last
// sale's age, paired with the code suffix.
var stockoutTiers = []struct {
	MaxPct float64
	Suffix string
}{
	{24, "A"},
	{50, "B"},
	{100, "C"},
}

// actionTemplates maps every scenario code to its recommended-action text.
// Placeholders [descuento], [unidades], [X días] and [importe] are filled by
// Action; a handful of codes get fully rebuilt sentences instead because they
// need two computed quantities.
var actionTemplates = map[string]string{
	"1":   "DESCUENTO MÁXIMO + REDUCCIÓN COMPRAS: Aplicar descuento [descuento]% inmediato. Reducir compras 50% próxima temporada. Stock objetivo: [unidades] unidades. Prioridad alta.",
	"2":   "DESCUENTO MODERADO + REDUCCIÓN COMPRAS: Aplicar descuento [descuento]% para dinamizar ventas. Reducir compras 35% próxima temporada. Stock objetivo: [unidades] unidades. Monitorear.",
	"3":   "DESCUENTO PREVENTIVO + AJUSTE COMPRAS: Aplicar descuento [descuento]% para anticipar venta. Reducir compras 20% próxima temporada. Mantener bajo observación semanal.",
	"4":   "MANTENER + GESTIÓN ACTIVA: Stock fresco de calidad. Reducir compras 15% próxima temporada. Stock actual suficiente para [X días] días.",
	"5":   "DESCUENTO CORRECTIVO + MONITOREO: Aplicar descuento [descuento]% a stock actual para renovar inventario. Mantener nivel de compras actual.",
	"6":   "DESCUENTO LEVE + OPTIMIZACIÓN: Aplicar descuento [descuento]% para renovar inventario. Reducir compras 15% próxima temporada.",
	"7":   "OPTIMIZAR PREVENTIVO: Aplicar descuento [descuento]% preventivo. Mantener nivel de compras actual. Stock bien gestionado.",
	"8":   "MANTENER ESTRATEGIA ACTUAL: Gestión excelente. Stock óptimo y fresco. Mantener nivel de compras actual. Producto clave del catálogo.",
	"9":   "INVESTIGAR + REDISEÑAR: Analizar causa de baja rotación. Mantener stock mínimo. Implementar acciones de venta. Reducir compras 25%.",
	"10":  "PROMOCIÓN ACTIVA + AJUSTE: Implementar promoción del 15% para estimula demanda. Aumentar visibilidad en punto de venta.",
	"11":  "REPOSICIÓN SELECTIVA: Aumentar compras 15% para evitar ruptura de stock. Aplicar descuento 5% para consolidar demanda.",
	"12":  "AUMENTAR STOCK: Producto de alto interés. Incrementar compras 20% próxima temporada. Stock actual: [unidades] unidades. Maximizar disponibilidad.",
	"13A": "URGENTE - REPOSICIÓN INMEDIATA: Producto de alta demanda agotado. Recompra prioritaria inmediata. Aumentar compras 40%. Stock objetivo: [unidades] unidades.",
	"13B": "REPOSICIÓN PRIORITARIA: Producto agotado con demanda reciente. Aumentar compras 25%. Stock objetivo: [unidades] unidades.",
	"13C": "REPOSICIÓN PROGRAMADA: Stock agotado con rotación moderada. Mantener nivel de compras anterior. Stock objetivo: [unidades] unidades.",
	"13D": "EVALUAR CONTINUIDAD: Producto agotado con demanda decreciente. Reducir compras 30% próxima temporada. Evaluar continuidad en catálogo.",
	"14":  "LIQUIDACIÓN URGENTE: Aplicar descuento [descuento]% inmediato. Eliminar del catálogo próxima temporada. Capital liberado: [importe]€. Prioridad máxima.",
	"15":  "REDUCCIÓN AGRESIVA: Aplicar descuento [descuento]% inmediato. Reducir compras 70% próxima temporada. Stock objetivo: [unidades] unidades. Riesgo alto de merma.",
	"16":  "DESCUENTO PREVENTIVO: Aplicar descuento [descuento]% para acelerar rotación. Reducir compras 40% próxima temporada. Monitorear evolución semanal.",
	"17":  "MANTENER SIN DESCUENTO: Stock fresco de calidad. Reducir compras 25% próxima temporada. Stock actual suficiente para [X días] días.",
	"18":  "LIQUIDACIÓN PARCIAL: Aplicar descuento [descuento]% a stock actual. Reducir compras 50% próxima temporada. Producto de baja rotación confirmada.",
	"19":  "DESCUENTO MODERADO: Aplicar descuento [descuento]% para renovar inventario. Reducir compras 30% próxima temporada. Stock actual en rango aceptable pero envejecido.",
	"20":  "OPTIMIZAR: Aplicar descuento [descuento]% preventivo. Mantener nivel de compras actual. Stock bien gestionado. Continuar monitoreo.",
	"21":  "MANTENER ESTRATEGIA ACTUAL: Gestión excelente. Stock óptimo y fresco. Mantener nivel de compras. Producto bien equilibrado.",
	"22":  "ELIMINAR DEL CATÁLOGO: Aplicar descuento [descuento]% para liquidar stock residual. NO recomprar. Bajo interés confirmado del cliente.",
	"23":  "LIQUIDAR Y DESCATALOGAR: Aplicar descuento [descuento]% para agotar stock. NO recomprar próxima temporada. Producto sin demanda suficiente.",
	"24":  "COMPRAS CONSERVADORAS: Aplicar descuento [descuento]% al stock actual. Reducir compras 50% próxima temporada. Demanda limitada confirmada.",
	"25":  "AUMENTAR STOCK: Producto de alto interés. Incrementar compras 30% próxima temporada. Stock actual: [unidades] unidades. Alta rotación confirmada.",
	"26A": "URGENTE - RUPTURA DE STOCK: Producto de alta demanda agotado. Recompra inmediata prioritaria. Aumentar compras 50%. Stock objetivo: [unidades] unidades.",
	"26B": "RECOMPRA PRIORITARIA: Producto agotado con demanda reciente. Aumentar compras 30%. Stock objetivo: [unidades] unidades. Monitorear demanda.",
	"26C": "RECOMPRA MODERADA: Stock agotado con rotación moderada. Mantener nivel de compras anterior. Stock objetivo: [unidades] unidades. Demanda estable.",
	"26D": "RECOMPRA CONSERVADORA: Producto agotado de baja rotación. Reducir compras 40% próxima temporada. Stock objetivo mínimo: [unidades] unidades.",
}

// Codes returns every known scenario code; test helper for exhaustiveness.
func Codes() []string {
	codes := make([]string, 0, len(actionTemplates))
	for code := range actionTemplates {
		codes = append(codes, code)
	}
	return codes
}
