package service

import (
	"github.com/nanashi-dev/nanashi/internal/domain"
)

type BoardService interface {
	Create(data domain.BoardCreationData) (string, error)
	All() ([]domain.BoardSummary, error)
	Get(slug string) (*domain.BoardPage, error)
}

type Board struct {
	storage   BoardStorage
	validator BoardValidator
}

type BoardStorage interface {
	CreateBoard(data domain.BoardCreationData) (string, error)
	GetBoards() ([]domain.BoardSummary, error)
	GetBoard(slug string) (*domain.BoardPage, error)
}

type BoardValidator interface {
	Slug(slug string) error
	Title(title string) error
}

func NewBoard(storage BoardStorage, validator BoardValidator) BoardService {
	return &Board{storage, validator}
}

func (b *Board) Create(data domain.BoardCreationData) (string, error) {
	if err := b.validator.Slug(data.Slug); err != nil {
		return "", err
	}
	if err := b.validator.Title(data.Title); err != nil {
		return "", err
	}
	return b.storage.CreateBoard(data)
}

func (b *Board) All() ([]domain.BoardSummary, error) {
	boards, err := b.storage.GetBoards()
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (b *Board) Get(slug string) (*domain.BoardPage, error) {
	board, err := b.storage.GetBoard(slug)
	if err != nil {
		return nil, err
	}
	return board, nil
}
