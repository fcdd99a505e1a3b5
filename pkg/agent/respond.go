package agent

import (
	"fmt"
	"strings"

	"github.com/mckayn10/ai-chat-app/pkg/contacts"
	"github.com/mckayn10/ai-chat-app/pkg/intents"
	"github.com/mckayn10/ai-chat-app/pkg/language"
)

// ActionResult is what one processed utterance resolves to. Every path
// through the engine produces one; nothing escapes as a raw error.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func failure(msg string) ActionResult { return ActionResult{Success: false, Message: msg} }

func success(msg string, data any) ActionResult {
	return ActionResult{Success: true, Message: msg, Data: data}
}

func es(loc language.Locale) bool { return loc == language.Spanish }

func pick(loc language.Locale, en, esMsg string) string {
	if es(loc) {
		return esMsg
	}
	return en
}

func msgLowConfidence(loc language.Locale) string {
	return pick(loc,
		"I'm not very confident about what you want to do. Could you please rephrase your request?",
		"No estoy muy seguro de lo que quieres hacer. ¿Podrías reformular tu solicitud?")
}

func msgGenericError(loc language.Locale) string {
	return pick(loc,
		"Sorry, I encountered an error processing your request. Please try again.",
		"Lo siento, encontré un error al procesar tu solicitud. Por favor intenta de nuevo.")
}

func msgBusy(loc language.Locale) string {
	return pick(loc,
		"I'm still working on your previous request. One moment, please.",
		"Todavía estoy trabajando en tu solicitud anterior. Un momento, por favor.")
}

func msgAskName(loc language.Locale) string {
	return pick(loc,
		"What is the name of the contact you'd like to create?",
		"¿Cuál es el nombre del contacto que te gustaría crear?")
}

func msgHelp(loc language.Locale) string {
	return pick(loc,
		"I'm not sure what you want me to do. You can try:\n"+
			"- Creating a new contact\n"+
			"- Listing all your contacts\n"+
			"- Updating a contact\n"+
			"- Deleting a contact",
		"No estoy seguro de lo que quieres que haga. Puedes intentar:\n"+
			"- Crear un nuevo contacto\n"+
			"- Mostrar todos tus contactos\n"+
			"- Actualizar un contacto\n"+
			"- Eliminar un contacto")
}

// msgInvalid maps a validation failure to the corrective message of the
// variant that failed.
func msgInvalid(action intents.Action, loc language.Locale) string {
	switch action {
	case intents.ActionCreate:
		return pick(loc,
			"I couldn't understand the contact details. Please provide at least a first and last name.",
			"No pude entender los detalles del contacto. Por favor proporciona al menos un nombre y apellido.")
	case intents.ActionCreateWithName:
		return pick(loc,
			"I couldn't understand the name. Could you please provide it again?",
			"No pude entender el nombre. ¿Podrías proporcionarlo nuevamente?")
	case intents.ActionDelete:
		return pick(loc,
			"I couldn't understand which contact to delete. Please provide the contact ID.",
			"No pude entender qué contacto eliminar. Por favor proporciona el ID del contacto.")
	case intents.ActionUpdate:
		return pick(loc,
			"I couldn't understand the update details. Please provide the contact ID and what to update.",
			"No pude entender los detalles de la actualización. Por favor proporciona el ID del contacto y qué actualizar.")
	case intents.ActionUpdateByName:
		return pick(loc,
			"I couldn't understand which contact you want to update. Please provide their name and what to change.",
			"No pude entender qué contacto quieres actualizar. Por favor proporciona su nombre y qué cambiar.")
	default:
		return msgHelp(loc)
	}
}

func msgCreated(loc language.Locale, c contacts.Contact, in contacts.Input) string {
	var extra string
	if es(loc) {
		if in.Email != "" {
			extra += fmt.Sprintf(" con correo %s", in.Email)
		}
		if in.Phone != "" {
			extra += fmt.Sprintf(" y teléfono %s", in.Phone)
		}
		return fmt.Sprintf("Contacto creado: %s%s", c.FullName(), extra)
	}
	if in.Email != "" {
		extra += fmt.Sprintf(" with email %s", in.Email)
	}
	if in.Phone != "" {
		extra += fmt.Sprintf(" and phone %s", in.Phone)
	}
	return fmt.Sprintf("Created contact: %s%s", c.FullName(), extra)
}

func msgCreatedWithName(loc language.Locale, c contacts.Contact) string {
	if es(loc) {
		return fmt.Sprintf("He creado un contacto para %s. ¿Te gustaría agregar algún detalle adicional como correo o teléfono?", c.FullName())
	}
	return fmt.Sprintf("I've created a contact for %s. Would you like to add any additional details like email or phone number?", c.FullName())
}

func msgContactList(loc language.Locale, header string, list []contacts.Contact) string {
	if len(list) == 0 {
		return pick(loc,
			"You don't have any contacts yet.",
			"Aún no tienes ningún contacto.")
	}
	if header == "" {
		header = pick(loc, "Here are your contacts:", "Aquí están tus contactos:")
	}
	lines := make([]string, 0, len(list))
	for _, c := range list {
		line := "- " + c.FullName()
		if c.Email != "" {
			line += " (" + c.Email + ")"
		}
		lines = append(lines, line)
	}
	return header + "\n\n" + strings.Join(lines, "\n")
}

func msgDeleted(loc language.Locale) string {
	return pick(loc, "Contact deleted successfully.", "Contacto eliminado exitosamente.")
}

func msgUpdated(loc language.Locale, c contacts.Contact) string {
	if es(loc) {
		return fmt.Sprintf("Contacto actualizado: %s", c.FullName())
	}
	return fmt.Sprintf("Updated contact: %s", c.FullName())
}

func msgNotFoundByID(loc language.Locale, id int64) string {
	if es(loc) {
		return fmt.Sprintf("No pude encontrar un contacto con el ID %d.", id)
	}
	return fmt.Sprintf("Couldn't find a contact with ID %d.", id)
}

func msgNotFoundByName(loc language.Locale, first, last string) string {
	name := first
	if last != "" {
		name += " " + last
	}
	if es(loc) {
		return fmt.Sprintf("No pude encontrar un contacto llamado %s", name)
	}
	return fmt.Sprintf("Couldn't find a contact named %s", name)
}

func msgAmbiguous(loc language.Locale, candidates []contacts.Contact) string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.FullName())
	}
	list := strings.Join(names, "\n")
	if es(loc) {
		return fmt.Sprintf("Encontré varios contactos con ese nombre. Por favor especifica el apellido también:\n%s", list)
	}
	return fmt.Sprintf("I found multiple contacts with that first name. Please specify the last name as well:\n%s", list)
}

func msgUpdateError(loc language.Locale) string {
	return pick(loc,
		"Sorry, I encountered an error while updating the contact.",
		"Lo siento, encontré un error al actualizar el contacto.")
}
