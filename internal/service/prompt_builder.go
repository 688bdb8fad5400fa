package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"examgen-backend/internal/model"
)

// contentBudget bounds how many characters of extracted text are embedded
// into a prompt. Truncation is silent and may cut mid-sentence.
const contentBudget = 4000

type typeInstruction struct {
	instruction  string
	questionType string
}

// truncate cuts s down to at most n characters. The budget counts runes, not
// bytes, so multi-byte text keeps its full allowance.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

var typeInstructions = map[model.ExamType]typeInstruction{
	model.ExamMultipleChoice: {
		instruction:  "SADECE çoktan seçmeli sorular oluştur. Her soru için 5 seçenek (A, B, C, D, E) hazırla. Doğru cevap harfini belirt.",
		questionType: "multiple_choice",
	},
	model.ExamTrueFalse: {
		instruction:  "SADECE doğru/yanlış soruları oluştur. Cevap 'Doğru' veya 'Yanlış' olmalı.",
		questionType: "true_false",
	},
	model.ExamFillBlank: {
		instruction:  "SADECE boşluk doldurma soruları oluştur. Boşluğu göstermek için '___' kullan. Doğru cevabı ver.",
		questionType: "fill_blank",
	},
	model.ExamOpenEnded: {
		instruction:  "SADECE açık uçlu sorular oluştur. Detaylı cevaplar gerektiren sorular hazırla. Örnek doğru cevap ver.",
		questionType: "open_ended",
	},
	model.ExamMixed: {
		instruction:  "Farklı türlerde sorular oluştur: çoktan seçmeli, doğru/yanlış, boşluk doldurma ve açık uçlu soruların karışımını yap.",
		questionType: "mixed",
	},
}

// BuildPrompt constructs the generation instruction for a text-based exam.
// It is a pure function of its inputs; identical inputs yield the identical
// prompt, including the strict JSON output contract the parser relies on.
func BuildPrompt(content string, examType model.ExamType, difficulty model.Difficulty, numQuestions int) string {
	content = truncate(content, contentBudget)

	inst := typeInstructions[examType]

	var b strings.Builder
	b.WriteString("Sen uzman bir sınav oluşturucususun. Verilen içeriğe dayalı olarak yüksek kaliteli sınav soruları oluştur.\n\n")
	fmt.Fprintf(&b, "Aşağıdaki içeriğe dayalı olarak %d adet %s zorluk seviyesinde sınav sorusu oluştur.\n\n",
		numQuestions, difficulty.TurkishLabel())
	b.WriteString(inst.instruction)
	b.WriteString("\n\nİçerik:\n")
	b.WriteString(content)

	if examType == model.ExamMixed {
		b.WriteString(`

ÖNEMLİ: Sadece aşağıdaki yapıda geçerli bir JSON dizisi döndür:
[
  {
    "question_text": "Soru metni burada",
    "question_type": "multiple_choice" veya "true_false" veya "fill_blank" veya "open_ended",
    "options": ["A. Seçenek 1", "B. Seçenek 2", "C. Seçenek 3", "D. Seçenek 4", "E. Seçenek 5"] (sadece multiple_choice için),
    "correct_answer": "Doğru cevap",
    "explanation": "Cevabın kısa açıklaması"
  }
]

JSON dizisinden önce veya sonra herhangi bir metin ekleme. Tüm soruları ve açıklamaları Türkçe dilinde oluştur.`)
		return b.String()
	}

	fmt.Fprintf(&b, `

ÖNEMLİ:
- TÜM sorular %[1]s türünde olmalı
- Sadece aşağıdaki yapıda geçerli bir JSON dizisi döndür:
[
  {
    "question_text": "Soru metni burada",
    "question_type": "%[1]s",
    "options": ["A. Seçenek 1", "B. Seçenek 2", "C. Seçenek 3", "D. Seçenek 4", "E. Seçenek 5"] (sadece multiple_choice için),
    "correct_answer": "Doğru cevap",
    "explanation": "Cevabın kısa açıklaması"
  }
]

JSON dizisinden önce veya sonra herhangi bir metin ekleme.
Her soru için question_type alanını "%[1]s" olarak ayarla.
Tüm soruları ve açıklamaları Türkçe dilinde oluştur.`, inst.questionType)
	return b.String()
}

// BuildImagePrompt constructs the instruction for an image-based exam. The
// page images travel separately as inline attachments; the prompt tells the
// model to refer to them by descriptive phrases rather than page numbers and
// to tag every question with the zero-based index of the image it refers to.
func BuildImagePrompt(difficulty model.Difficulty, numQuestions int) string {
	var b strings.Builder
	b.WriteString("Sen uzman bir sınav oluşturucususun. Verilen görsellere dayalı olarak yüksek kaliteli sınav soruları oluştur.\n\n")
	fmt.Fprintf(&b, "Aşağıdaki görsellere dayalı olarak %d adet %s zorluk seviyesinde görsel tabanlı sınav sorusu oluştur.\n\n",
		numQuestions, difficulty.TurkishLabel())
	b.WriteString(`SORU TÜRÜ TALİMATI:
SADECE görsel tabanlı sorular oluştur!
- Her soru için 5 seçenek (A, B, C, D, E) hazırla
- question_type her zaman 'image_based' olmalı
- options alanını doldur
- correct_answer sadece harf olmalı (A, B, C, D veya E)
- Sorular görseldeki içeriği analiz etmeyi gerektirmeli
- Başka türde soru oluşturma!

GÖRSEL TANIMLAMA TALİMATI:
- Soru metninde "Görsel 0", "Görsel 1" gibi sayfa numaraları KULLANMA!
- Bunun yerine her görselin içeriğini tanımlayan açıklayıcı ifadeler kullan
- Görselin türünü ve içeriğini belirten ifadeler kullan:

ÖRNEKLER:
- "Yukarıdaki akış diyagramına göre..." (süreç diyagramı için)
- "Verilen grafikte gösterilen..." (grafik/chart için)
- "Şemada belirtilen..." (teknik şema için)
- "Tablodaki verilere göre..." (veri tablosu için)
- "Diyagramda gösterilen..." (genel diyagram için)
- "Resimde görülen..." (fotoğraf için)

KURALLAR:
- Görselin ne tür bir içerik olduğunu (diyagram, grafik, tablo, şema, resim vb.) belirt
- Görselin ana konusunu veya amacını kısaca açıkla
- "Yukarıdaki", "Verilen", "Şemada" gibi ifadelerle görsele atıf yap

ÖNEMLİ:
- TÜM sorular image_based türünde olmalı
- Sadece aşağıdaki yapıda geçerli bir JSON dizisi döndür:
[
  {
    "question_text": "Yukarıdaki akış diyagramına göre hangi süreç gösterilmektedir?",
    "question_type": "image_based",
    "options": ["A. Seçenek 1", "B. Seçenek 2", "C. Seçenek 3", "D. Seçenek 4", "E. Seçenek 5"],
    "correct_answer": "A",
    "explanation": "Cevabın kısa açıklaması",
    "image_index": 0
  }
]

JSON dizisinden önce veya sonra herhangi bir metin ekleme.
Her soru için question_type alanını "image_based" olarak ayarla.
image_index 0'dan başlayarak görsel numarasını belirt.
Tüm soruları ve açıklamaları Türkçe dilinde oluştur.`)
	return b.String()
}
