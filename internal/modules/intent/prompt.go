package intent

import (
	"fmt"
	"strings"

	"nusavarta/internal/modules/sites"
)

const classifyTemplate = `Analisis pertanyaan pengguna ini. Tentukan apakah ini permintaan rute. Jika ya, ekstrak lokasi AWAL dan TUJUAN, lalu buat pertanyaan balik yang ramah untuk menawarkan tur budaya. Jawab HANYA dalam format JSON dengan kunci "isRouteRequest", "origin", "destination", dan "aiReply".
Jika bukan permintaan rute, jawab { "isRouteRequest": false, "origin": "", "destination": "", "aiReply": "" }.
Contoh Pertanyaan: "Gimana cara ke Gedung Sate dari Stasiun Bandung?"
Jawaban JSON yang Diharapkan:
{ "isRouteRequest": true, "origin": "Stasiun Bandung", "destination": "Gedung Sate", "aiReply": "Tentu! Perjalanan ke Gedung Sate akan lebih seru kalau mampir ke tempat bersejarah di sekitarnya. Apakah Anda tertarik untuk sekalian saya buatkan rute budaya?" }
%s
Pertanyaan Pengguna: %q
Jawaban JSON:`

// buildPrompt injects the known sites mentioned in the message so the model
// copies their canonical names.
func buildPrompt(message string, known []sites.Site) string {
	var hints string
	if len(known) > 0 {
		var b strings.Builder
		b.WriteString("Tempat budaya yang dikenal dalam pertanyaan (gunakan nama ini apa adanya):\n")
		for _, s := range known {
			fmt.Fprintf(&b, "- %s (%s)\n", s.Name, s.Location)
		}
		hints = b.String()
	}
	return fmt.Sprintf(classifyTemplate, hints, message)
}
