package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Landing pages for the gateway redirect. These are display-only: the query
// parameters come back through the payer's browser and are never used to
// mutate subscription state (the webhook is the sole writer).

type outcomePage struct {
	heading string
	detail  string
}

var outcomePages = map[string]outcomePage{
	"success": {
		heading: "¡Pago aprobado!",
		detail:  "Estamos confirmando tu suscripción con el medio de pago.",
	},
	"pending": {
		heading: "Pago pendiente",
		detail:  "Tu pago está siendo procesado. Te avisaremos cuando se acredite.",
	},
	"failure": {
		heading: "No pudimos procesar el pago",
		detail:  "El pago fue rechazado o cancelado. Podés intentarlo nuevamente desde tu panel.",
	},
}

func paymentSummaryHTML(c echo.Context) string {
	paymentID := c.QueryParam("payment_id")
	status := c.QueryParam("status")
	reference := c.QueryParam("external_reference")

	if paymentID == "" && status == "" && reference == "" {
		return ""
	}

	return fmt.Sprintf(
		`<p class="summary">Pago: %s · Estado: %s · Referencia: %s</p>`,
		html.EscapeString(paymentID),
		html.EscapeString(status),
		html.EscapeString(reference),
	)
}

func (h *PaymentHandler) SuccessPage(c echo.Context) error {
	page := outcomePages["success"]

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="es">
	<head>
		<meta charset="utf-8">
		<title>Tienda 360 - Pago aprobado</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				text-align: center;
				margin-top: 80px;
			}
			.countdown {
				font-size: 24px;
				font-weight: bold;
			}
			.summary {
				color: #666;
			}
		</style>
	</head>
	<body>
		<h2>%s</h2>
		<p>%s</p>
		%s
		<p>Volviendo a tu panel en <span class="countdown" id="countdown">5</span> segundos…</p>

		<script>
			let seconds = 5;
			const el = document.getElementById("countdown");

			const timer = setInterval(function () {
				seconds--;
				el.textContent = seconds;

				if (seconds <= 0) {
					clearInterval(timer);
					window.location.href = "/dashboard";
				}
			}, 1000);

			// navigating away before the countdown ends must not leave a
			// redirect pending
			window.addEventListener("pagehide", function () {
				clearInterval(timer);
			});
		</script>
	</body>
	</html>
	`, page.heading, page.detail, paymentSummaryHTML(c))

	return c.HTML(http.StatusOK, body)
}

func (h *PaymentHandler) PendingPage(c echo.Context) error {
	return h.renderTerminalPage(c, outcomePages["pending"])
}

func (h *PaymentHandler) FailurePage(c echo.Context) error {
	return h.renderTerminalPage(c, outcomePages["failure"])
}

func (h *PaymentHandler) renderTerminalPage(c echo.Context, page outcomePage) error {
	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="es">
	<head>
		<meta charset="utf-8">
		<title>Tienda 360 - Suscripción</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				text-align: center;
				margin-top: 80px;
			}
			.summary {
				color: #666;
			}
		</style>
	</head>
	<body>
		<h2>%s</h2>
		<p>%s</p>
		%s
		<p><a href="/dashboard">Volver al panel</a></p>
	</body>
	</html>
	`, page.heading, page.detail, paymentSummaryHTML(c))

	return c.HTML(http.StatusOK, body)
}
