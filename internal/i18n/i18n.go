package i18n

import (
	"context"

	"github.com/PauloHFS/blogicum/internal/contextkeys"
)

const DefaultLocale = "ru"

type Translation struct {
	Locale string

	SiteName      string
	Home          string
	Login         string
	Logout        string
	Register      string
	Username      string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	EditProfile   string
	NewPost       string
	Title         string
	Text          string
	PubDate       string
	Location      string
	Category      string
	NoLocation    string
	NoCategory    string
	IsPublished   string
	Save          string
	Delete        string
	Edit          string
	Cancel        string
	Comments      string
	AddComment    string
	EditComment   string
	DeletePost    string
	DeleteComment string
	ConfirmDelete string
	Draft         string
	Scheduled     string
	HiddenTopic   string
	Author        string
	Registered    string
	NoPosts       string
	Previous      string
	Next          string
	PageOf        string
	NotFound      string
	NotFoundText  string
	ServerError   string
	InvalidLogin  string
	SignedUp      string
}

var ruRU = Translation{
	Locale:        "ru",
	SiteName:      "Блогикум",
	Home:          "Главная",
	Login:         "Войти",
	Logout:        "Выйти",
	Register:      "Регистрация",
	Username:      "Имя пользователя",
	Email:         "Адрес электронной почты",
	Password:      "Пароль",
	FirstName:     "Имя",
	LastName:      "Фамилия",
	EditProfile:   "Редактировать профиль",
	NewPost:       "Новая публикация",
	Title:         "Заголовок",
	Text:          "Текст",
	PubDate:       "Дата и время публикации",
	Location:      "Местоположение",
	Category:      "Категория",
	NoLocation:    "Планета Земля",
	NoCategory:    "Без категории",
	IsPublished:   "Опубликовано",
	Save:          "Сохранить",
	Delete:        "Удалить",
	Edit:          "Редактировать",
	Cancel:        "Отмена",
	Comments:      "Комментарии",
	AddComment:    "Оставить комментарий",
	EditComment:   "Редактирование комментария",
	DeletePost:    "Удаление публикации",
	DeleteComment: "Удаление комментария",
	ConfirmDelete: "Вы уверены? Это действие нельзя отменить.",
	Draft:         "Снято с публикации",
	Scheduled:     "Отложенная публикация",
	HiddenTopic:   "Категория снята с публикации",
	Author:        "Автор",
	Registered:    "Дата регистрации",
	NoPosts:       "Публикаций пока нет.",
	Previous:      "Назад",
	Next:          "Вперёд",
	PageOf:        "Страница %d из %d",
	NotFound:      "Страница не найдена",
	NotFoundText:  "Ошибка 404. Такой страницы нет или она вам недоступна.",
	ServerError:   "Ошибка сервера. Попробуйте позже.",
	InvalidLogin:  "Неверное имя пользователя или пароль.",
	SignedUp:      "Аккаунт создан. Теперь можно войти.",
}

var enUS = Translation{
	Locale:        "en",
	SiteName:      "Blogicum",
	Home:          "Home",
	Login:         "Log in",
	Logout:        "Log out",
	Register:      "Sign up",
	Username:      "Username",
	Email:         "Email",
	Password:      "Password",
	FirstName:     "First name",
	LastName:      "Last name",
	EditProfile:   "Edit profile",
	NewPost:       "New post",
	Title:         "Title",
	Text:          "Text",
	PubDate:       "Publication date",
	Location:      "Location",
	Category:      "Category",
	NoLocation:    "Planet Earth",
	NoCategory:    "Uncategorized",
	IsPublished:   "Published",
	Save:          "Save",
	Delete:        "Delete",
	Edit:          "Edit",
	Cancel:        "Cancel",
	Comments:      "Comments",
	AddComment:    "Leave a comment",
	EditComment:   "Edit comment",
	DeletePost:    "Delete post",
	DeleteComment: "Delete comment",
	ConfirmDelete: "Are you sure? This cannot be undone.",
	Draft:         "Unpublished",
	Scheduled:     "Scheduled",
	HiddenTopic:   "Category unpublished",
	Author:        "Author",
	Registered:    "Joined",
	NoPosts:       "No posts yet.",
	Previous:      "Previous",
	Next:          "Next",
	PageOf:        "Page %d of %d",
	NotFound:      "Page not found",
	NotFoundText:  "Error 404. The page does not exist or is not available to you.",
	ServerError:   "Server error. Please try again later.",
	InvalidLogin:  "Invalid username or password.",
	SignedUp:      "Account created. You can log in now.",
}

// Get retorna as traduções baseadas no idioma do contexto
func Get(ctx context.Context) Translation {
	locale, _ := ctx.Value(contextkeys.LocaleKey).(string)
	return For(locale)
}

func For(locale string) Translation {
	switch locale {
	case "en":
		return enUS
	default:
		return ruRU
	}
}
