package model

import "github.com/JiSuMun/New-zigoohang/internal/entity"

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	clientUser := User{
		ID:          user.ID,
		Name:        user.Name,
		IsSeller:    user.IsSeller,
		Points:      user.Points,
		TotalPoints: user.TotalPoints,
	}

	if includeSensitive {
		clientUser.Email = user.Email
		clientUser.Address = user.Address
	}

	return clientUser
}

func ConvertUsers(users []entity.User) []User {
	clientUsers := []User{}
	for i := range users {
		clientUsers = append(clientUsers, ConvertUser(&users[i], false))
	}

	return clientUsers
}

func ConvertPointLedgerEntry(entry *entity.PointLedgerEntry) PointLedgerEntry {
	if entry == nil {
		return PointLedgerEntry{}
	}

	return PointLedgerEntry{
		ID:        entry.ID,
		IsCredit:  entry.IsCredit,
		Reason:    entry.Reason,
		Amount:    entry.Amount,
		CreatedAt: entry.CreatedAt,
	}
}

func ConvertChatRoom(room *entity.ChatRoom) ChatRoom {
	if room == nil {
		return ChatRoom{}
	}

	return ChatRoom{
		ID:   room.ID,
		Name: room.Name,
	}
}

func ConvertChatMessage(msg *entity.ChatMessage) ChatMessage {
	if msg == nil {
		return ChatMessage{}
	}

	return ChatMessage{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func ConvertPost(post *entity.Post, tags []string) Post {
	if post == nil {
		return Post{}
	}

	if tags == nil {
		tags = []string{}
	}

	return Post{
		ID:        post.ID,
		UserID:    post.UserID,
		Title:     post.Title,
		Content:   post.Content,
		Tags:      tags,
		CreatedAt: post.CreatedAt,
	}
}

func ConvertReview(review *entity.Review) Review {
	if review == nil {
		return Review{}
	}

	return Review{
		ID:        review.ID,
		PostID:    review.PostID,
		UserID:    review.UserID,
		Content:   review.Content,
		CreatedAt: review.CreatedAt,
	}
}

func ConvertChallenge(challenge *entity.Challenge) Challenge {
	if challenge == nil {
		return Challenge{}
	}

	return Challenge{
		ID:          challenge.ID,
		Title:       challenge.Title,
		Description: challenge.Description,
		CreatedBy:   challenge.CreatedBy,
		StartDate:   challenge.StartDate,
		EndDate:     challenge.EndDate,
	}
}

func ConvertCertification(certification *entity.Certification) Certification {
	if certification == nil {
		return Certification{}
	}

	return Certification{
		ID:          certification.ID,
		ChallengeID: certification.ChallengeID,
		UserID:      certification.UserID,
		Title:       certification.Title,
		Content:     certification.Content,
		CreatedAt:   certification.CreatedAt,
	}
}
