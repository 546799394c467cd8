// Package taxonomy holds the static classification vocabulary of the
// question bank: valid subjects, topics per subject, difficulties,
// education levels and ENEM knowledge areas. The tables are initialized
// once and must be treated as read-only.
package taxonomy

import (
	"strings"
	"unicode"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	LevelEscola     = "escola"
	LevelVestibular = "vestibular"
	LevelFaculdade  = "faculdade"
)

var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

var EducationLevels = []string{LevelEscola, LevelVestibular, LevelFaculdade}

var AreasENEM = []string{"Linguagens", "Humanas", "Natureza", "Matemática"}

var ValidSubjects = []string{
	"Matemática", "Português", "Literatura", "Inglês", "Espanhol",
	"História", "Geografia", "Filosofia", "Sociologia",
	"Física", "Química", "Biologia",
	"Cálculo", "Álgebra Linear", "Estatística", "Programação",
	"Direito Constitucional", "Administração", "Contabilidade",
}

var TopicsBySubject = map[string][]string{
	"Matemática":             {"Álgebra", "Geometria", "Trigonometria", "Funções", "Probabilidade", "Estatística", "Aritmética"},
	"Português":              {"Gramática", "Interpretação", "Redação", "Ortografia", "Sintaxe", "Semântica"},
	"Literatura":             {"Romantismo", "Realismo", "Modernismo", "Barroco", "Arcadismo", "Contemporânea"},
	"Inglês":                 {"Grammar", "Reading", "Vocabulary", "Interpretation"},
	"Espanhol":               {"Gramática", "Lectura", "Vocabulario", "Interpretación"},
	"História":               {"Brasil Colônia", "Brasil Império", "Brasil República", "História Antiga", "Idade Média", "Era Moderna", "Contemporânea"},
	"Geografia":              {"Cartografia", "Climatologia", "Geopolítica", "Urbanização", "Meio Ambiente", "Globalização"},
	"Filosofia":              {"Ética", "Epistemologia", "Metafísica", "Filosofia Política", "Lógica"},
	"Sociologia":             {"Clássicos", "Cultura", "Trabalho", "Desigualdade", "Movimentos Sociais"},
	"Física":                 {"Mecânica", "Termodinâmica", "Óptica", "Eletricidade", "Ondas", "Física Moderna"},
	"Química":                {"Química Orgânica", "Química Inorgânica", "Físico-Química", "Estequiometria"},
	"Biologia":               {"Citologia", "Genética", "Ecologia", "Evolução", "Fisiologia", "Botânica", "Zoologia"},
	"Cálculo":                {"Limites", "Derivadas", "Integrais", "Séries"},
	"Álgebra Linear":         {"Matrizes", "Vetores", "Sistemas Lineares", "Transformações"},
	"Estatística":            {"Descritiva", "Inferencial", "Probabilidade", "Regressão"},
	"Programação":            {"Algoritmos", "Estruturas de Dados", "POO", "Web"},
	"Direito Constitucional": {"Princípios", "Direitos Fundamentais", "Organização do Estado"},
	"Administração":          {"Gestão", "Marketing", "Finanças", "RH"},
	"Contabilidade":          {"Balanço", "DRE", "Custos", "Tributária"},
}

// NormalizeSubject maps a free-form subject name onto its canonical
// casing. Unknown subjects are title-cased as a best effort so that
// repeated imports of the same unknown subject still agree.
func NormalizeSubject(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return subject
	}
	for _, valid := range ValidSubjects {
		if strings.EqualFold(subject, valid) {
			return valid
		}
	}
	return titleCase(subject)
}

func ValidSubject(subject string) bool {
	for _, s := range ValidSubjects {
		if s == subject {
			return true
		}
	}
	return false
}

func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

func ValidEducationLevel(l string) bool {
	for _, v := range EducationLevels {
		if v == l {
			return true
		}
	}
	return false
}

// Topics returns the known topics for a subject (canonical or not);
// nil when the subject has no registered topics.
func Topics(subject string) []string {
	return TopicsBySubject[NormalizeSubject(subject)]
}

func titleCase(s string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		var out rune
		if unicode.IsSpace(prev) {
			out = unicode.ToUpper(r)
		} else {
			out = unicode.ToLower(r)
		}
		prev = r
		return out
	}, s)
}
