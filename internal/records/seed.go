package records

import "time"

func floatPtr(v float64) *float64 { return &v }

// Seed returns the fixture collection granted to an identity on first access,
// so new accounts have explorable content. Upload dates are anchored to the
// provided reference time (one, two, and three days earlier); everything else
// is fixed.
func Seed(now time.Time) Collection {
	now = now.UTC().Truncate(time.Second)
	return Collection{
		{
			ID:             "sample_1",
			FileName:       "bosque_amazonico_amanecer.wav",
			UploadDate:     now.Add(-24 * time.Hour),
			SpectrogramURL: "/placeholder.svg?height=300&width=600",
			AudioURL:       "/placeholder-audio.mp3",
			FileSize:       15728640,
			Duration:       180,
			Location: &Location{
				Lat:         -3.4653,
				Lng:         -62.2159,
				Address:     "Reserva Nacional Pacaya-Samiria, Perú",
				Ecosystem:   "Bosque Tropical Húmedo",
				Weather:     "Parcialmente nublado",
				Temperature: floatPtr(26),
			},
			AnalysisResults: []AnalysisResult{
				{
					Species:      "Turdus migratorius",
					CommonName:   "Petirrojo Americano",
					Confidence:   94.5,
					Frequency:    "2-8 kHz",
					TimeDetected: []string{"00:15", "01:23", "02:45"},
				},
				{
					Species:      "Corvus corax",
					CommonName:   "Cuervo Común",
					Confidence:   87.2,
					Frequency:    "0.5-4 kHz",
					TimeDetected: []string{"00:45", "02:10"},
				},
			},
			Tags:   []string{"amanecer", "bosque", "biodiversidad"},
			Notes:  "Grabación realizada durante el amanecer en la reserva. Se observó alta actividad de aves.",
			Status: StatusCompleted,
			ProcessingSteps: ProcessingSteps{
				Upload:         true,
				Spectrogram:    true,
				Analysis:       true,
				Identification: true,
			},
		},
		{
			ID:             "sample_2",
			FileName:       "parque_urbano_tarde.mp3",
			UploadDate:     now.Add(-48 * time.Hour),
			SpectrogramURL: "/placeholder.svg?height=300&width=600",
			AudioURL:       "/placeholder-audio.mp3",
			FileSize:       8388608,
			Duration:       120,
			Location: &Location{
				Lat:         19.4326,
				Lng:         -99.1332,
				Address:     "Parque Chapultepec, Ciudad de México",
				Ecosystem:   "Parque Urbano",
				Weather:     "Soleado",
				Temperature: floatPtr(22),
			},
			AnalysisResults: []AnalysisResult{
				{
					Species:      "Cardinalidae cardinalis",
					CommonName:   "Cardenal Rojo",
					Confidence:   91.8,
					Frequency:    "1.5-6 kHz",
					TimeDetected: []string{"00:30", "01:45"},
				},
			},
			Tags:   []string{"urbano", "tarde", "parque"},
			Notes:  "Grabación en ambiente urbano con presencia de ruido de fondo moderado.",
			Status: StatusCompleted,
			ProcessingSteps: ProcessingSteps{
				Upload:         true,
				Spectrogram:    true,
				Analysis:       true,
				Identification: true,
			},
		},
		{
			ID:              "sample_3",
			FileName:        "costa_marina_noche.wav",
			UploadDate:      now.Add(-72 * time.Hour),
			SpectrogramURL:  "/placeholder.svg?height=300&width=600",
			AudioURL:        "/placeholder-audio.mp3",
			FileSize:        25165824,
			Duration:        300,
			Location: &Location{
				Lat:         20.6296,
				Lng:         -87.0739,
				Address:     "Reserva de la Biosfera Sian Ka'an, Quintana Roo",
				Ecosystem:   "Manglar Costero",
				Weather:     "Despejado",
				Temperature: floatPtr(24),
			},
			AnalysisResults: []AnalysisResult{},
			Tags:            []string{"nocturno", "costa", "manglar"},
			Notes:           "Grabación nocturna en zona costera. Análisis en proceso.",
			Status:          StatusProcessing,
			ProcessingSteps: ProcessingSteps{
				Upload:      true,
				Spectrogram: true,
			},
		},
	}
}
