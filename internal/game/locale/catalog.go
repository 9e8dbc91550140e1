package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The key text is the English rendering.
const (
	TagCreature = "Creature"
	TagDuck     = "Duck"
	TagDog      = "Dog"
	TagDuckDog  = "Duck-Dog"

	NameDuck       = "Mean Duck"
	NameDog        = "Bandit Dog"
	NameGatling    = "Gatling"
	NameLad        = "Lad"
	NameRogue      = "Rogue"
	NameTrasher    = "Trasher"
	NameBrewer     = "Brewer"
	NamePseudoDuck = "Pseudo Duck"
	NameNemo       = "Nemo"
	NameSheriff    = "Sheriff"
	NameBandit     = "Bandit"

	DescDuck       = "just a duck"
	DescDog        = "just a dog"
	DescGatling    = "deals 2 damage to every opposing card on the table"
	DescLad        = "The more of them, the stronger they are"
	DescRogue      = "steals abilities from a card"
	DescTrasher    = "Takes 1 less damage"
	DescBrewer     = "Do you respect me??"
	DescPseudoDuck = "Amalgam"
	DescNemo       = "The one without a name without an honest heart as compass"
)

var russian = map[string]string{
	TagCreature: "Существо",
	TagDuck:     "Утка",
	TagDog:      "Собака",
	TagDuckDog:  "Утка-Собака",

	NameDuck:       "Злая утка",
	NameDog:        "Пес-бандит",
	NameGatling:    "Гатлинг",
	NameLad:        "Браток",
	NameRogue:      "Изгой",
	NameTrasher:    "Громила",
	NameBrewer:     "Пивовар",
	NamePseudoDuck: "Псевдоутка",
	NameNemo:       "Немо",
	NameSheriff:    "Шериф",
	NameBandit:     "Бандит",

	DescDuck:       "просто утка",
	DescDog:        "просто пёс",
	DescGatling:    "наносит 2 урона всем картам противника на столе",
	DescLad:        "Чем их больше, тем они сильнее",
	DescRogue:      "забирает способности у карты",
	DescTrasher:    "Получает на 1 урона меньше",
	DescBrewer:     "Ты меня уважаешь??",
	DescPseudoDuck: "Амальгама",
	DescNemo:       "The one without a name without an honest heart as compass",
}

func init() {
	for key, text := range russian {
		_ = message.SetString(language.Russian, key, text)
	}
	for key := range russian {
		_ = message.SetString(language.English, key, key)
	}
}
