package guide

import (
	"fmt"
	"strings"

	"nusavarta/internal/modules/sites"
)

const persona = `Anda adalah "Garudie", AI pemandu wisata dari aplikasi "Nusavarta". Persona Anda ramah, antusias, dan berpengetahuan. Selalu jawab dalam Bahasa Indonesia. Gunakan konteks berikut untuk jawaban yang akurat.`

const noContext = "Tidak ada konteks spesifik dari database."

func buildPrompt(message string, known []sites.Site) string {
	return fmt.Sprintf("%s\n\nKonteks:\n%s\n\nPertanyaan Pengguna: %s", persona, groundingContext(known), message)
}

func groundingContext(known []sites.Site) string {
	if len(known) == 0 {
		return noContext
	}
	blocks := make([]string, len(known))
	for i, s := range known {
		blocks[i] = fmt.Sprintf("Nama: %s\nDeskripsi: %s", s.Name, s.Description)
	}
	return strings.Join(blocks, "\n\n")
}
