package schedule

import (
	"fmt"
	"strings"
)

// MessageKind distinguishes the states a schedule view can be in. Downstream
// consumers rely on the states being distinct, so they are modelled
// explicitly instead of being encoded in the text alone.
type MessageKind int

const (
	// MessageNoData: the region has no published document at all.
	MessageNoData MessageKind = iota
	// MessagePending: the requested day is not in the document yet
	// (typically tomorrow before the evening publication).
	MessagePending
	// MessageNoOutages: the day is published but none of the requested
	// queues have outages on it.
	MessageNoOutages
	// MessagePopulated: a rendered per-queue schedule block.
	MessagePopulated
)

// Message is a rendered schedule view for one region, day and queue set.
type Message struct {
	Kind MessageKind
	Text string
}

// BuildMessage renders the outage schedule of the given queues for the
// selected day. Texts are HTML for the Telegram transport.
func BuildMessage(queues []string, doc Document, mode Mode, areaTitle, titlePrefix string) Message {
	if len(doc) == 0 {
		return Message{
			Kind: MessageNoData,
			Text: "❌ Графік ще не опубліковано. Перевірте пізніше.",
		}
	}

	dateLabel := "Сьогодні"
	if mode == ModeTomorrow {
		dateLabel = "Завтра"
	}

	dateKey, ok := SelectDate(doc, mode)
	if !ok {
		if mode == ModeTomorrow {
			return Message{
				Kind: MessagePending,
				Text: fmt.Sprintf(
					"%s<b>Графік відключень</b>\n Область: <b>%s</b>\n Завтра — <b>очікується оновлення даних</b>.\n\nДані з’являться, щойно їх опублікує Обленерго.",
					titlePrefix, areaTitle),
			}
		}
		return Message{
			Kind: MessagePending,
			Text: fmt.Sprintf(
				"%s<b>Графік відключень</b>\n Область: <b>%s</b>\n %s — <b>очікується оновлення даних</b>.",
				titlePrefix, areaTitle, dateLabel),
		}
	}

	dayData := doc[dateKey]
	blocks := make([]string, 0, len(queues))
	hasOutages := false

	for _, q := range queues {
		intervals := dayData[q]
		if len(intervals) == 0 {
			blocks = append(blocks, fmt.Sprintf("<b>Черга %s</b>\n   –", q))
			continue
		}
		hasOutages = true
		lines := make([]string, 0, len(intervals))
		for _, iv := range intervals {
			lines = append(lines, "   • "+iv)
		}
		blocks = append(blocks, fmt.Sprintf("<b>Черга %s</b>\n%s", q, strings.Join(lines, "\n")))
	}

	if !hasOutages {
		return Message{
			Kind: MessageNoOutages,
			Text: fmt.Sprintf(
				"%s<b>Графік відключень</b>\n Область: <b>%s</b>\n %s (%s)\n\nУ вибраних черг <b>немає відключень</b> на цей день.",
				titlePrefix, areaTitle, dateLabel, dateKey),
		}
	}

	header := fmt.Sprintf(
		"%s<b>Графік відключень</b>\n Область: <b>%s</b>\n %s (%s)\n\n",
		titlePrefix, areaTitle, dateLabel, dateKey)

	return Message{
		Kind: MessagePopulated,
		Text: header + strings.Join(blocks, "\n\n"),
	}
}
