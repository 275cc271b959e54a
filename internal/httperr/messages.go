package httperr

var messages = map[string]string{
	"business_not_found":      "Estabelecimento não encontrado.",
	"service_not_found":       "Serviço não encontrado.",
	"appointment_not_found":   "Agendamento não encontrado.",
	"inventory_not_found":     "Item de estoque não encontrado.",
	"not_business_owner":      "Ação permitida apenas ao dono do estabelecimento.",
	"invalid_request":         "Dados inválidos.",
	"invalid_email":           "E-mail inválido.",
	"missing_params":          "Parâmetros obrigatórios ausentes.",
	"invalid_date_or_time":    "Data ou hora inválida.",
	"invalid_status":          "Status inválido.",
	"no_services":             "Informe ao menos um serviço.",
	"closed_day":              "O estabelecimento não abre neste dia.",
	"outside_working_hours":   "Horário fora do expediente.",
	"slot_occupied":           "Horário já ocupado por outro agendamento.",
	"invalid_operating_hours": "Configuração de horários inválida.",
	"invalid_movement":        "Movimentação de estoque inválida.",
	"insufficient_stock":      "Estoque insuficiente.",
	"reserved_reason":         "Motivo reservado para baixas de agendamentos.",
}

// Message devolve a mensagem para o usuário final associada ao código.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Requisição inválida."
}
