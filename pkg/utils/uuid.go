package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const idLength = 12

// GenerateID gera os identificadores de auditorias, jobs e entidades espelhadas
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}

// MustGenerateID é usado onde uma falha de entropia não tem tratamento possível
func MustGenerateID() string {
	id, err := GenerateID()
	if err != nil {
		panic(err)
	}
	return id
}
